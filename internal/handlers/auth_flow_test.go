// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"

	"willowhaven/internal/models"
	"willowhaven/internal/session"
)

// testTOTPSecret is a well-formed base32 TOTP secret for code generation.
const testTOTPSecret = "JBSWY3DPEHPK3PXP"

// createTestUser registers a user and removes it when the test ends.
func createTestUser(t *testing.T, env *testEnv, email, password string) *models.User {
	t.Helper()

	// Remove any leftover from a previous failed run.
	if existing, _ := env.Users.FindByEmail(email); existing != nil {
		env.Users.Delete(existing.ID)
	}

	user, err := env.Users.Create(email, password, "Flow Tester", models.RoleEditor)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { env.Users.Delete(user.ID) })
	return user
}

// sessionCookie extracts the session cookie from a login response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	createTestUser(t, env, "wrongpass@willowhavencare.com", "correct-horse")

	form := url.Values{"email": {"wrongpass@willowhavencare.com"}, "password": {"battery-staple"}}
	w := httptest.NewRecorder()
	env.Auth.LoginSubmit(w, postForm("/admin/login", form))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (form re-render)", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password.") {
		t.Error("error message not shown")
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			t.Error("session cookie set for failed login")
		}
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"email": {"nobody@willowhavencare.com"}, "password": {"whatever"}}
	w := httptest.NewRecorder()
	env.Auth.LoginSubmit(w, postForm("/admin/login", form))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password.") {
		t.Error("error message not shown")
	}
}

func TestLoginRoutesToSetupWithout2FA(t *testing.T) {
	env := newTestEnv(t)
	createTestUser(t, env, "newstaff@willowhavencare.com", "first-day-2026")

	form := url.Values{"email": {"newstaff@willowhavencare.com"}, "password": {"first-day-2026"}}
	w := httptest.NewRecorder()
	env.Auth.LoginSubmit(w, postForm("/admin/login", form))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/2fa/setup" {
		t.Errorf("redirect = %q, want /admin/2fa/setup", loc)
	}

	c := sessionCookie(t, w)
	if !c.HttpOnly {
		t.Error("session cookie not HttpOnly")
	}
}

func TestLoginRoutesToVerifyWith2FA(t *testing.T) {
	env := newTestEnv(t)
	user := createTestUser(t, env, "veteran@willowhavencare.com", "seen-it-all")
	if err := env.Users.SetTOTPSecret(user.ID, testTOTPSecret); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	if err := env.Users.EnableTOTP(user.ID); err != nil {
		t.Fatalf("enable totp: %v", err)
	}

	form := url.Values{"email": {"veteran@willowhavencare.com"}, "password": {"seen-it-all"}}
	w := httptest.NewRecorder()
	env.Auth.LoginSubmit(w, postForm("/admin/login", form))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/2fa/verify" {
		t.Errorf("redirect = %q, want /admin/2fa/verify", loc)
	}
}

func TestTwoFAVerifyCompletesLogin(t *testing.T) {
	env := newTestEnv(t)
	user := createTestUser(t, env, "verify@willowhavencare.com", "tick-tock")
	if err := env.Users.SetTOTPSecret(user.ID, testTOTPSecret); err != nil {
		t.Fatalf("set secret: %v", err)
	}

	// Log in to obtain a real session cookie.
	loginW := httptest.NewRecorder()
	env.Auth.LoginSubmit(loginW, postForm("/admin/login", url.Values{
		"email": {"verify@willowhavencare.com"}, "password": {"tick-tock"},
	}))
	cookie := sessionCookie(t, loginW)

	code, err := totp.GenerateCode(testTOTPSecret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	r := postForm("/admin/2fa/verify", url.Values{"code": {code}})
	r.AddCookie(cookie)
	sess, err := env.Sessions.Get(r.Context(), r)
	if err != nil {
		t.Fatalf("session get: %v", err)
	}
	r = r.WithContext(ctxWithSession(r.Context(), sess))

	w := httptest.NewRecorder()
	env.Auth.TwoFAVerifySubmit(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Errorf("redirect = %q, want /admin/dashboard", loc)
	}

	// First successful verification turns 2FA on for the account.
	updated, err := env.Users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if !updated.TOTPEnabled {
		t.Error("TOTP not enabled after first verification")
	}
}

func TestTwoFAVerifyRejectsBadCode(t *testing.T) {
	env := newTestEnv(t)
	user := createTestUser(t, env, "badcode@willowhavencare.com", "oops-oops")
	if err := env.Users.SetTOTPSecret(user.ID, testTOTPSecret); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	if err := env.Users.EnableTOTP(user.ID); err != nil {
		t.Fatalf("enable totp: %v", err)
	}

	loginW := httptest.NewRecorder()
	env.Auth.LoginSubmit(loginW, postForm("/admin/login", url.Values{
		"email": {"badcode@willowhavencare.com"}, "password": {"oops-oops"},
	}))
	cookie := sessionCookie(t, loginW)

	r := postForm("/admin/2fa/verify", url.Values{"code": {"000000"}})
	r.AddCookie(cookie)
	sess, err := env.Sessions.Get(r.Context(), r)
	if err != nil {
		t.Fatalf("session get: %v", err)
	}
	r = r.WithContext(ctxWithSession(r.Context(), sess))

	w := httptest.NewRecorder()
	env.Auth.TwoFAVerifySubmit(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (form re-render)", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid code. Please try again.") {
		t.Error("error message not shown")
	}
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	sess := testSession(uuid.New(), "already@willowhavencare.com", "editor", true)
	r = r.WithContext(ctxWithSession(r.Context(), sess))
	w := httptest.NewRecorder()

	env.Auth.LoginPage(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Errorf("redirect = %q, want /admin/dashboard", loc)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	createTestUser(t, env, "leaving@willowhavencare.com", "bye-for-now")

	loginW := httptest.NewRecorder()
	env.Auth.LoginSubmit(loginW, postForm("/admin/login", url.Values{
		"email": {"leaving@willowhavencare.com"}, "password": {"bye-for-now"},
	}))
	cookie := sessionCookie(t, loginW)

	r := postForm("/admin/logout", url.Values{})
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.Auth.Logout(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("redirect = %q, want /admin/login", loc)
	}

	// The session is gone server-side.
	check := postForm("/admin/dashboard", url.Values{})
	check.AddCookie(cookie)
	if sess, _ := env.Sessions.Get(check.Context(), check); sess != nil {
		t.Error("session still valid after logout")
	}
}
