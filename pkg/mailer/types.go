package mailer

// SendEmailRequest is the body of POST /api/send-email.
type SendEmailRequest struct {
	To      string `json:"to"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Token   string `json:"token,omitempty"`
	AppURL  string `json:"appUrl,omitempty"`
	Subject string `json:"subject,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// SendEmailResponse is returned on successful delivery.
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// ErrorResponse is returned on validation or transport failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	EmailServiceReady bool   `json:"emailServiceReady"`
}
