package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const RecoverySubject = "Reset your password"

var recoveryTmpl = template.Must(template.New("recovery").Parse(`<p>Hello {{.Name}},</p>
<p>A password reset was requested for your account. The link below is valid
for one hour and can be used once:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you did not request this, you can ignore this message.</p>`))

// RecoveryMessage renders the one-time reset mail body. The token travels
// only inside the link; it is never persisted in plaintext.
func RecoveryMessage(displayName, baseURL, token string) (string, error) {
	link := fmt.Sprintf("%s/reset/%s", strings.TrimRight(baseURL, "/"), token)

	var buf bytes.Buffer
	err := recoveryTmpl.Execute(&buf, struct {
		Name string
		Link string
	}{Name: displayName, Link: link})
	if err != nil {
		return "", fmt.Errorf("render recovery mail: %w", err)
	}

	return buf.String(), nil
}
