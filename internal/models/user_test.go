// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestUserIsAdmin(t *testing.T) {
	// Role comparison is exact: only the canonical lowercase value counts.
	for _, tt := range []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleEditor, false},
		{Role(""), false},
		{Role("superadmin"), false},
		{Role("ADMIN"), false},
		{Role("Admin"), false},
	} {
		u := &User{Role: tt.role}
		if got := u.IsAdmin(); got != tt.want {
			t.Errorf("IsAdmin() with role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestUserNeeds2FASetup(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"

	// Setup is needed until TOTPEnabled flips, regardless of whether a
	// secret has been staged.
	for _, tt := range []struct {
		name    string
		secret  *string
		enabled bool
		want    bool
	}{
		{"fresh account", nil, false, true},
		{"secret staged, not yet verified", &secret, false, true},
		{"fully enrolled", &secret, true, false},
		{"enabled without secret", nil, true, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{TOTPSecret: tt.secret, TOTPEnabled: tt.enabled}
			if got := u.Needs2FASetup(); got != tt.want {
				t.Errorf("Needs2FASetup() = %v, want %v", got, tt.want)
			}
		})
	}
}
