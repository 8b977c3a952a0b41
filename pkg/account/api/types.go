package api

import (
	"time"

	"github.com/google/uuid"
)

// SignupParams is the registration request body.
type SignupParams struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	ContactName string `json:"contactName"`
	CompanyName string `json:"companyName"`
	Country     string `json:"country"`
	Role        string `json:"role"`
}

type SignupInput struct {
	Payload *SignupParams `in:"body=json"`
}

type SigninParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninInput struct {
	Payload *SigninParams `in:"body=json"`
}

type ConfirmEmailParams struct {
	Token string `json:"token"`
}

type ConfirmEmailInput struct {
	Payload *ConfirmEmailParams `in:"body=json"`
}

type EmailParams struct {
	Email string `json:"email"`
}

type EmailInput struct {
	Payload *EmailParams `in:"body=json"`
}

type ResetPasswordParams struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordInput struct {
	Payload *ResetPasswordParams `in:"body=json"`
}

type UpdatePasswordParams struct {
	NewPassword string `json:"newPassword"`
}

type UpdatePasswordInput struct {
	Payload *UpdatePasswordParams `in:"body=json"`
}

// AccountResponse is the wire shape of an account. The credential hash and
// pending token never leave the service.
type AccountResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	ContactName    string    `json:"contactName"`
	CompanyName    string    `json:"companyName"`
	Country        string    `json:"country"`
	Role           string    `json:"role"`
	EmailConfirmed bool      `json:"emailConfirmed"`
	CreatedAt      time.Time `json:"createdAt"`
}

type SigninResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

type ConfirmEmailResponse struct {
	Confirmed bool `json:"confirmed"`
}

type StatusResponse struct {
	Success bool `json:"success"`
}
