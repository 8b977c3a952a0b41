package notification

import (
	"fmt"
)

// NotificationSystem represents a delivery system (email, sms, ...).
type NotificationSystem string

// NoticeType identifies a kind of notification ("signup_confirmation", ...).
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// Notice types. The string values double as the wire `type` values the
	// mailer service accepts.
	SignupConfirmationNotice NoticeType = "signup_confirmation"
	PasswordResetNotice      NoticeType = "password_reset"
	CustomNotice             NoticeType = "custom"

	ExampleNotice NoticeType = "example"
)

// NoticeTemplate holds the subject and bodies for one notice on one system.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// NotificationManager routes notices to registered notifiers using the
// templates registered per (notice type, system).
type NotificationManager struct {
	baseURL              string
	notifiers            map[NotificationSystem]Notifier
	notificationRegistry map[NoticeType]map[NotificationSystem]NoticeTemplate
}

// NewNotificationManager creates and returns a new NotificationManager.
func NewNotificationManager(baseURL string) *NotificationManager {
	return &NotificationManager{
		baseURL:              baseURL,
		notifiers:            make(map[NotificationSystem]Notifier),
		notificationRegistry: make(map[NoticeType]map[NotificationSystem]NoticeTemplate),
	}
}

// BaseURL returns the application base URL used when building links.
func (nm *NotificationManager) BaseURL() string {
	return nm.baseURL
}

// RegisterNotifier registers a notifier for a specific system.
func (nm *NotificationManager) RegisterNotifier(system NotificationSystem, notifier Notifier) {
	nm.notifiers[system] = notifier
}

// RegisterNotification adds a notice template to the registry.
func (nm *NotificationManager) RegisterNotification(notifType NoticeType, system NotificationSystem, template NoticeTemplate) error {
	if notifType == "" || system == "" {
		return fmt.Errorf("invalid input: notification type and system cannot be empty")
	}
	if template.Subject == "" || (template.Text == "" && template.Html == "") {
		return fmt.Errorf("invalid template: subject and at least one of text/html are required")
	}

	if _, exists := nm.notificationRegistry[notifType]; !exists {
		nm.notificationRegistry[notifType] = make(map[NotificationSystem]NoticeTemplate)
	}

	nm.notificationRegistry[notifType][system] = template
	return nil
}

// Send delivers a notice over every system that has both a template and a
// notifier registered for it.
func (nm *NotificationManager) Send(notifType NoticeType, notification NotificationData) error {
	systemTemplates, exists := nm.notificationRegistry[notifType]
	if !exists {
		return fmt.Errorf("no templates registered for notification type: %s", notifType)
	}

	for system, template := range systemTemplates {
		notifier, exists := nm.notifiers[system]
		if !exists {
			return fmt.Errorf("no notifier registered for system: %s", system)
		}
		if err := notifier.Send(notifType, notification, template); err != nil {
			return err
		}
	}

	return nil
}

// SendWith delivers a notice over one system with an ad-hoc template,
// bypassing the registry. Used for caller-supplied custom emails.
func (nm *NotificationManager) SendWith(system NotificationSystem, notifType NoticeType, notification NotificationData, template NoticeTemplate) error {
	notifier, exists := nm.notifiers[system]
	if !exists {
		return fmt.Errorf("no notifier registered for system: %s", system)
	}
	return notifier.Send(notifType, notification, template)
}
