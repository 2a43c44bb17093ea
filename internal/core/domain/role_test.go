package domain

import "testing"

func TestRole_AtLeast(t *testing.T) {
	cases := []struct {
		have, min Role
		want      bool
	}{
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleModerator, true},
		{RoleModerator, RoleModerator, true},
		{RoleModerator, RoleAdmin, false},
		{RoleUser, RoleModerator, false},
		{Role("root"), RoleUser, false},
		{RoleAdmin, Role("root"), false},
	}
	for _, tc := range cases {
		if got := tc.have.AtLeast(tc.min); got != tc.want {
			t.Fatalf("%s.AtLeast(%s) = %v, want %v", tc.have, tc.min, got, tc.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(string(r))
		if err != nil || got != r {
			t.Fatalf("ParseRole(%q) = %q, %v", r, got, err)
		}
	}
	if _, err := ParseRole("Admin"); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for wrong case, got %v", err)
	}
	if _, err := ParseRole(""); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for empty role, got %v", err)
	}
}
