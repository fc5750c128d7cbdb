// Copyright (c) 2026 Willow Haven Senior Living <hello@willowhavencare.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"willowhaven/internal/middleware"
	"willowhaven/internal/render"
)

// UsersList renders the staff account overview.
func (a *Admin) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.userStore.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
	}

	a.renderer.Page(w, r, "users_list", &render.PageData{
		Title:   "Staff Accounts",
		Section: "users",
		Data:    map[string]any{"Users": users},
	})
}

// UserResetTwoFA clears another account's authenticator enrollment so it
// goes through setup again on its next login. Admins cannot reset their
// own account this way.
func (a *Admin) UserResetTwoFA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if sess != nil && targetID == sess.UserID {
		http.Error(w, "Cannot reset your own 2FA", http.StatusForbidden)
		return
	}

	if err := a.userStore.ResetTOTP(targetID); err != nil {
		slog.Error("reset 2fa failed", "error", err, "target_user", targetID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if sess != nil {
		slog.Info("2fa reset by admin", "admin", sess.Email, "target_user", targetID)
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
