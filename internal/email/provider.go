package email

// Provider sends email messages. Implementations must be safe for
// concurrent use; services fire notifications from goroutines.
type Provider interface {
	// Send delivers a fully built message.
	Send(email *Email) error

	// SendWithTemplate renders templateName with data into the HTML body,
	// then sends.
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// SendTemplate is the convenience path used by services.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	Close() error
}

// TemplateRenderer renders named templates to HTML.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
