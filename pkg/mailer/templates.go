package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const welcomeHTML = `<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to Places, {{.Name}}!</h2>
    <p>Your account is ready. Sign in, add your favourite spots, and share
    them with the world.</p>
    <p>— The Places team</p>
  </body>
</html>`

var welcomeTpl = template.Must(template.New(TemplateWelcome).Parse(welcomeHTML))

// Render produces subject, text, and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeTpl.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		recipient, _ := data["Name"].(string)
		return "Welcome to Places",
			fmt.Sprintf("Welcome to Places, %s! Your account is ready.", recipient),
			buf.String(),
			nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
