package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The worker composes the body from Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "activation"
	Data     map[string]any `json:"data,omitempty"`
}

// TemplateActivation is the job template for account-activation emails.
// Data carries Fullname, Code and Link.
const TemplateActivation = "activation"
