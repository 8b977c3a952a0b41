package notification

// NotificationData carries one outbound notification.
type NotificationData struct {
	To      string            // Recipient identifier (email address)
	Subject string            // Optional subject override
	Body    string            // Optional body override for custom sends
	Data    map[string]string // Template variables (Name, ConfirmURL, ResetURL, ...)
}

// Notifier delivers a rendered notification over one system.
type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
