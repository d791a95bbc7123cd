package email

type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

type Email struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData feeds the HTML templates.
type TemplateData map[string]interface{}
