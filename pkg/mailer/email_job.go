package mailer

import "fmt"

// Templates understood by the email worker.
const (
	TemplateWelcome       = "welcome"
	TemplateAccountLocked = "account_locked"
)

// EmailJob is the message published to the email queue. Either Template
// is set (with Data), or Subject/Text carry a raw message.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// Render resolves a job's template into a subject and plain-text body.
// Jobs without a template pass through unchanged.
func Render(job EmailJob) (subject, text string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, nil
	}
	name := str(job.Data, "Name")
	switch job.Template {
	case TemplateWelcome:
		return "Welcome to Emart",
			fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now sign in with your email address.\n\nThe Emart team", name),
			nil
	case TemplateAccountLocked:
		return "Your account has been locked",
			fmt.Sprintf("Hi %s,\n\nYour account was locked after too many failed sign-in attempts. Please contact support to restore access.\n\nThe Emart team", name),
			nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}

func str(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if v, ok := data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
