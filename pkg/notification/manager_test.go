package notification

import (
	"context"
	"testing"
)

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager("")
	if nm == nil {
		t.Error("NewNotificationManager returned nil")
	}
	if nm.notifiers == nil {
		t.Error("notifiers map not initialized")
	}
	if nm.notificationRegistry == nil {
		t.Error("notificationRegistry map not initialized")
	}
}

func TestRegisterNotifier(t *testing.T) {
	nm := NewNotificationManager("")
	mockNotifier := &MockNotifier{}

	nm.RegisterNotifier(EmailSystem, mockNotifier)
	if n, exists := nm.notifiers[EmailSystem]; !exists {
		t.Error("Notifier not registered")
	} else if n != mockNotifier {
		t.Error("Wrong notifier registered")
	}

	// Registering again overwrites
	newMockNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, newMockNotifier)
	if n := nm.notifiers[EmailSystem]; n != newMockNotifier {
		t.Error("Notifier not overwritten")
	}
}

func TestRegisterNotification(t *testing.T) {
	nm := NewNotificationManager("")

	tests := []struct {
		name        string
		notifType   NoticeType
		system      NotificationSystem
		template    NoticeTemplate
		shouldError bool
	}{
		{
			name:        "Valid registration with both Text and Html",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email", Html: "<p>This is an example email</p>"},
			shouldError: false,
		},
		{
			name:        "Valid registration with Text only",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: false,
		},
		{
			name:        "Valid registration with Html only",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Html: "<p>This is an example email</p>"},
			shouldError: false,
		},
		{
			name:        "Empty notification type",
			notifType:   "",
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "Empty system",
			notifType:   ExampleNotice,
			system:      "",
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "Empty subject",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "No content",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "", Html: ""},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nm.RegisterNotification(tt.notifType, tt.system, tt.template)
			if tt.shouldError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if !tt.shouldError {
				if template, exists := nm.notificationRegistry[tt.notifType][tt.system]; !exists {
					t.Error("Template not registered")
				} else if template.Subject != tt.template.Subject {
					t.Errorf("Wrong subject registered. Got %s, want %s", template.Subject, tt.template.Subject)
				}
			}
		})
	}
}

func TestSend(t *testing.T) {
	nm := NewNotificationManager("")
	mockNotifier := &MockNotifier{}

	nm.RegisterNotifier(EmailSystem, mockNotifier)
	err := nm.RegisterNotification(ExampleNotice, EmailSystem, NoticeTemplate{Subject: "Example Notification", Text: "This is an example notification"})
	if err != nil {
		t.Fatalf("Failed to register notification: %v", err)
	}

	testData := NotificationData{
		To:      "user@example.com",
		Subject: "Test Subject",
		Body:    "Test Body",
	}

	if err := nm.Send(ExampleNotice, testData); err != nil {
		t.Errorf("Failed to send notification: %v", err)
	}

	if len(mockNotifier.SentNotifications) != 1 {
		t.Error("Notification not sent")
	} else {
		sent := mockNotifier.SentNotifications[0]
		if sent.To != testData.To || sent.Subject != testData.Subject || sent.Body != testData.Body {
			t.Error("Notification data mismatch")
		}
	}
}

func TestSendErrors(t *testing.T) {
	nm := NewNotificationManager("")

	// Unregistered notification type
	err := nm.Send("unregistered", NotificationData{})
	if err == nil {
		t.Error("Expected error for unregistered notification type")
	}

	// Registered template without a notifier
	err = nm.RegisterNotification(ExampleNotice, EmailSystem, NoticeTemplate{Subject: "Example Notification", Html: "<p>example</p>"})
	if err != nil {
		t.Fatalf("Failed to register notification: %v", err)
	}

	err = nm.Send(ExampleNotice, NotificationData{})
	if err == nil {
		t.Error("Expected error for missing notifier")
	} else if err.Error() != "no notifier registered for system: email" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestDefaultTemplatesEmbedded(t *testing.T) {
	nm, err := NewNotificationManagerWithOptions("http://localhost:3000",
		WithNotifier(EmailSystem, &MockNotifier{}),
		WithDefaultTemplates(),
	)
	if err != nil {
		t.Fatalf("Failed to build manager: %v", err)
	}

	for _, notice := range []NoticeType{SignupConfirmationNotice, PasswordResetNotice} {
		tmpl, ok := nm.notificationRegistry[notice][EmailSystem]
		if !ok {
			t.Errorf("Template for %s not registered", notice)
			continue
		}
		if tmpl.Html == "" {
			t.Errorf("Template for %s is empty", notice)
		}
	}
}

func TestVerificationMailerLinks(t *testing.T) {
	mock := &MockNotifier{}
	nm, err := NewNotificationManagerWithOptions("http://localhost:3000/",
		WithNotifier(EmailSystem, mock),
		WithDefaultTemplates(),
	)
	if err != nil {
		t.Fatalf("Failed to build manager: %v", err)
	}

	mailer := NewVerificationMailer(nm)
	if err := mailer.SendSignupConfirmation(context.Background(), "user@example.com", "Pat", "Tok16Tok16Tok16T"); err != nil {
		t.Fatalf("SendSignupConfirmation: %v", err)
	}

	if len(mock.SentNotifications) != 1 {
		t.Fatal("expected one notification")
	}
	got := mock.SentNotifications[0].Data["ConfirmURL"]
	want := "http://localhost:3000/confirm-email?token=Tok16Tok16Tok16T"
	if got != want {
		t.Errorf("ConfirmURL = %q, want %q", got, want)
	}
}
