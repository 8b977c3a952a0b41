// Package mailer is the standalone email-sending microservice: it renders
// the two fixed verification emails (or relays caller-supplied custom ones)
// through the configured SMTP provider.
package mailer

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/solvend/solvend/pkg/notification"
)

// Handle implements the dispatcher HTTP API.
type Handle struct {
	manager    *notification.NotificationManager
	emailReady bool
}

// NewHandle creates a new dispatcher handle. emailReady reflects the result
// of the one-time SMTP verification at startup; health reports it without
// re-probing the relay per request.
func NewHandle(manager *notification.NotificationManager, emailReady bool) *Handle {
	return &Handle{manager: manager, emailReady: emailReady}
}

// Routes mounts the dispatcher endpoints.
func Routes(r chi.Router, h *Handle) {
	r.Post("/api/send-email", h.SendEmail)
	r.Get("/health", h.Health)
}

// SendEmail handles POST /api/send-email.
func (h *Handle) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.To == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "missing required field: to"})
		return
	}

	appURL := req.AppURL
	if appURL == "" {
		appURL = h.manager.BaseURL()
	}

	messageID := uuid.NewString()
	var err error

	switch notification.NoticeType(req.Type) {
	case notification.SignupConfirmationNotice:
		if req.Token == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "missing required field: token"})
			return
		}
		err = h.manager.Send(notification.SignupConfirmationNotice, notification.NotificationData{
			To: req.To,
			Data: map[string]string{
				"Name":       req.Name,
				"ConfirmURL": notification.ConfirmURL(appURL, req.Token),
				"MessageID":  messageID,
			},
		})
	case notification.PasswordResetNotice:
		if req.Token == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "missing required field: token"})
			return
		}
		err = h.manager.Send(notification.PasswordResetNotice, notification.NotificationData{
			To: req.To,
			Data: map[string]string{
				"Name":      req.Name,
				"ResetURL":  notification.ResetURL(appURL, req.Token),
				"MessageID": messageID,
			},
		})
	case notification.CustomNotice:
		if req.Subject == "" || req.HTML == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "custom emails require both subject and html"})
			return
		}
		err = h.manager.SendWith(notification.EmailSystem, notification.CustomNotice,
			notification.NotificationData{
				To:   req.To,
				Data: map[string]string{"MessageID": messageID},
			},
			notification.NoticeTemplate{Subject: req.Subject, Html: req.HTML},
		)
	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "unknown email type: " + req.Type})
		return
	}

	if err != nil {
		slog.Error("Failed to send email", "to", req.To, "type", req.Type, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
		return
	}

	slog.Info("Email dispatched", "to", req.To, "type", req.Type, "message_id", messageID)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, SendEmailResponse{Success: true, MessageID: messageID})
}

// Health handles GET /health. Always 200 once the process is listening; the
// relay connection was verified once at startup.
func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, HealthResponse{
		Status:            "ok",
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		EmailServiceReady: h.emailReady,
	})
}
