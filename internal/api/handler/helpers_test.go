package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/api/apierror"
	"github.com/openforum/forum-api/internal/api/middleware"
	"github.com/openforum/forum-api/internal/core/domain"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = apierror.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

type call struct {
	method string
	path   string
	body   string
	params map[string]string
	user   *domain.User
}

// invoke runs h the way the router would, including central error rendering.
func invoke(e *echo.Echo, h echo.HandlerFunc, cl call) *httptest.ResponseRecorder {
	var body io.Reader
	if cl.body != "" {
		body = strings.NewReader(cl.body)
	}
	req := httptest.NewRequest(cl.method, cl.path, body)
	if cl.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(cl.params) > 0 {
		names := make([]string, 0, len(cl.params))
		values := make([]string, 0, len(cl.params))
		for k, v := range cl.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if cl.user != nil {
		middleware.SetIdentity(c, cl.user)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	return resp
}
