package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret is the signing secret used when JWT_SECRET is unset. It is
// refused when ENV=production.
const DevJWTSecret = "insecure-dev-secret"

type Config struct {
	Port          string   `env:"PORT,        default=8080"`
	Env           string   `env:"ENV,         default=development"`
	LogLevel      string   `env:"LOG_LEVEL,   default=info"`
	LogPretty     bool     `env:"LOG_PRETTY,  default=false"`
	CORSOrigins   []string `env:"CORS_ORIGINS, default=*"`
	ActivityQueue int      `env:"ACTIVITY_WORKERS, default=4"`

	// TrustedProxies lists the CIDR ranges allowed to set X-Forwarded-For.
	// Empty means the peer address is the client address.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET,  default=insecure-dev-secret"`
	JWTTTL     time.Duration `env:"JWT_TTL,     default=24h"`
	JWTIssuer  string        `env:"JWT_ISSUER,  default=forum-api"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=forum"`
}

// RedisConfig is optional. An empty Addr selects the in-process login limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), nil)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l, or the process environment when l
// is nil, and validates the result.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server must not start with.
func (c *Config) Validate() error {
	var errs []error
	if c.IsProduction() && c.UsingDefaultSecret() {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.Auth.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Auth.LoginRateLimit <= 0 || c.Auth.LoginRateWindow <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT and LOGIN_RATE_WINDOW must be positive"))
	}
	if _, err := c.TrustedProxyRanges(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TrustedProxyRanges parses TrustedProxies.
func (c *Config) TrustedProxyRanges() ([]*net.IPNet, error) {
	ranges := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, cidr := range c.TrustedProxies {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// UsingDefaultSecret reports whether tokens would be signed with DevJWTSecret.
func (c *Config) UsingDefaultSecret() bool {
	return c.Auth.JWTSecret == DevJWTSecret
}
