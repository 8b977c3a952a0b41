package verification

import "context"

// MockMessage records one email handed to the MockMailer.
type MockMessage struct {
	To    string
	Name  string
	Token string
}

// MockMailer records sent emails for tests.
type MockMailer struct {
	Confirmations []MockMessage
	Resets        []MockMessage
	Err           error // returned from every send when set
}

func (m *MockMailer) SendSignupConfirmation(ctx context.Context, to, name, token string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Confirmations = append(m.Confirmations, MockMessage{To: to, Name: name, Token: token})
	return nil
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Resets = append(m.Resets, MockMessage{To: to, Name: name, Token: token})
	return nil
}
