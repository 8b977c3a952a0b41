// Package api exposes signup, signin and the verification workflow over HTTP.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ggicci/httpin"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/solvend/solvend/pkg/account"
	"github.com/solvend/solvend/pkg/verification"
)

type Handle struct {
	accounts     *account.AccountService
	verification *verification.VerificationService
}

func NewHandle(accounts *account.AccountService, verification *verification.VerificationService) Handle {
	return Handle{accounts: accounts, verification: verification}
}

// Routes mounts the public auth routes on r and the session-bound routes on
// protected, which the caller wraps with jwtauth middleware.
func Routes(r chi.Router, protected chi.Router, h Handle) {
	r.With(httpin.NewInput(SignupInput{})).Post("/api/signup", h.Signup)
	r.With(httpin.NewInput(SigninInput{})).Post("/api/signin", h.Signin)
	r.With(httpin.NewInput(ConfirmEmailInput{})).Post("/api/confirm-email", h.ConfirmEmail)
	r.With(httpin.NewInput(EmailInput{})).Post("/api/resend-confirmation", h.ResendConfirmation)
	r.With(httpin.NewInput(EmailInput{})).Post("/api/request-password-reset", h.RequestPasswordReset)
	r.With(httpin.NewInput(ResetPasswordInput{})).Post("/api/reset-password", h.ResetPassword)

	protected.Get("/api/profile", h.Profile)
	protected.Post("/api/signout", h.Signout)
	protected.With(httpin.NewInput(UpdatePasswordInput{})).Put("/api/password", h.UpdatePassword)
}

// Signup creates the account and then issues the confirmation token. Token
// issuance and email delivery are best effort: their failure does not undo a
// created account, the caller can request a resend later.
func (h Handle) Signup(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*SignupInput)
	params := input.Payload

	acct, err := h.accounts.Signup(r.Context(), account.SignupParams{
		Email:       params.Email,
		Password:    params.Password,
		ContactName: params.ContactName,
		CompanyName: params.CompanyName,
		Country:     params.Country,
		Role:        account.Role(params.Role),
	})
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			render.Status(r, http.StatusConflict)
			render.PlainText(w, r, err.Error())
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, err.Error())
		return
	}

	if _, err := h.verification.IssueConfirmation(r.Context(), acct); err != nil {
		slog.Error("Failed to issue confirmation after signup", "account_id", acct.ID, "err", err)
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAccountResponse(acct))
}

func (h Handle) Signin(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*SigninInput)
	params := input.Payload

	acct, tok, err := h.accounts.SignIn(r.Context(), params.Email, params.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidCredentials):
			render.Status(r, http.StatusUnauthorized)
			render.PlainText(w, r, err.Error())
		case errors.Is(err, account.ErrEmailNotConfirmed):
			render.Status(r, http.StatusForbidden)
			render.PlainText(w, r, err.Error())
		default:
			slog.Error("Signin failed", "err", err)
			render.Status(r, http.StatusInternalServerError)
			render.PlainText(w, r, "sign in failed")
		}
		return
	}

	render.JSON(w, r, SigninResponse{Token: tok, Account: toAccountResponse(acct)})
}

func (h Handle) Signout(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionAccountID(r)
	if ok {
		h.accounts.SignOut(r.Context(), id)
	}
	render.JSON(w, r, StatusResponse{Success: true})
}

func (h Handle) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionAccountID(r)
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.PlainText(w, r, "invalid session")
		return
	}

	acct, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			render.Status(r, http.StatusNotFound)
			render.PlainText(w, r, err.Error())
			return
		}
		slog.Error("Failed to load profile", "account_id", id, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to load profile")
		return
	}

	render.JSON(w, r, toAccountResponse(acct))
}

func (h Handle) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*UpdatePasswordInput)

	id, ok := sessionAccountID(r)
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.PlainText(w, r, "invalid session")
		return
	}

	if err := h.accounts.UpdatePassword(r.Context(), id, input.Payload.NewPassword); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			render.Status(r, http.StatusNotFound)
			render.PlainText(w, r, err.Error())
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, err.Error())
		return
	}

	render.JSON(w, r, StatusResponse{Success: true})
}

func (h Handle) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*ConfirmEmailInput)

	confirmed, err := h.verification.ConfirmEmail(r.Context(), input.Payload.Token)
	if err != nil {
		slog.Error("Failed to confirm email", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to confirm email")
		return
	}

	render.JSON(w, r, ConfirmEmailResponse{Confirmed: confirmed})
}

func (h Handle) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*EmailInput)

	if err := h.verification.ResendConfirmation(r.Context(), input.Payload.Email); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			render.Status(r, http.StatusNotFound)
			render.PlainText(w, r, err.Error())
			return
		}
		slog.Error("Failed to resend confirmation", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to resend confirmation")
		return
	}

	render.JSON(w, r, StatusResponse{Success: true})
}

// RequestPasswordReset reports success for unknown emails as well, so the
// endpoint cannot be used to probe which addresses are registered.
func (h Handle) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*EmailInput)

	if err := h.verification.RequestPasswordReset(r.Context(), input.Payload.Email); err != nil {
		slog.Error("Failed to request password reset", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to request password reset")
		return
	}

	render.JSON(w, r, StatusResponse{Success: true})
}

func (h Handle) ResetPassword(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*ResetPasswordInput)

	err := h.verification.ResetPassword(r.Context(), input.Payload.Token, input.Payload.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrTokenExpired):
			render.Status(r, http.StatusGone)
			render.PlainText(w, r, err.Error())
		case errors.Is(err, verification.ErrTokenInvalid):
			render.Status(r, http.StatusBadRequest)
			render.PlainText(w, r, err.Error())
		default:
			slog.Error("Failed to reset password", "err", err)
			render.Status(r, http.StatusBadRequest)
			render.PlainText(w, r, err.Error())
		}
		return
	}

	render.JSON(w, r, StatusResponse{Success: true})
}

// sessionAccountID pulls the account id out of the verified jwt claims.
func sessionAccountID(r *http.Request) (uuid.UUID, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.Nil, false
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func toAccountResponse(acct account.Account) AccountResponse {
	resp := AccountResponse{}
	copier.Copy(&resp, &acct)
	resp.Role = string(acct.Role)
	return resp
}
