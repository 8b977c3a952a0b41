package notification

// MockNotifier records notifications for tests.
type MockNotifier struct {
	SentNotifications []NotificationData
	Err               error // returned from Send when set
}

func (m *MockNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	if m.Err != nil {
		return m.Err
	}
	m.SentNotifications = append(m.SentNotifications, notification)
	return nil
}
