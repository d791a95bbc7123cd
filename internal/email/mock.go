package email

import "sync"

// MockProvider records sent emails for tests and local development.
type MockProvider struct {
	mu   sync.Mutex
	Sent []*Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(msg *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *MockProvider) SendWithTemplate(templateName string, data TemplateData, msg *Email) error {
	return m.Send(msg)
}

func (m *MockProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	return m.Send(&Email{To: to, Subject: subject})
}

func (m *MockProvider) Validate() error { return nil }
func (m *MockProvider) Close() error    { return nil }

// SentCount returns how many emails were recorded.
func (m *MockProvider) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
