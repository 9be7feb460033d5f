package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/parkmoor/clubhouse/internal/portal/service"
)

// SignupHandler renders the registration form and creates accounts.
type SignupHandler struct {
	SignupService *service.SignupService
	Logger        *slog.Logger
}

type signupPage struct {
	Error    string
	Username string
	Email    string
}

// HandleGet renders the empty registration form.
func (h *SignupHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	render(w, h.Logger, http.StatusOK, "signup.html.tmpl", signupPage{})
}

// HandlePost creates the account and sends the new user to the login
// form. Validation and conflict errors re-render the form with the
// submitted username and email preserved.
func (h *SignupHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	_, err := h.SignupService.Signup(r.Context(), username, email, password)
	if err == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	page := signupPage{Username: strings.TrimSpace(username), Email: strings.TrimSpace(email)}
	switch {
	case errors.Is(err, service.ErrAlreadyExists):
		page.Error = "That username is already taken."
		render(w, h.Logger, http.StatusConflict, "signup.html.tmpl", page)
	case errors.Is(err, service.ErrValidation):
		page.Error = err.Error()
		render(w, h.Logger, http.StatusBadRequest, "signup.html.tmpl", page)
	case errors.Is(err, service.ErrStoreUnavailable):
		h.Logger.Error("signup failed", "err", err)
		page.Error = "Service temporarily unavailable. Please try again."
		render(w, h.Logger, http.StatusServiceUnavailable, "signup.html.tmpl", page)
	default:
		h.Logger.Error("signup failed", "err", err)
		page.Error = "Something went wrong. Please try again."
		render(w, h.Logger, http.StatusInternalServerError, "signup.html.tmpl", page)
	}
}
