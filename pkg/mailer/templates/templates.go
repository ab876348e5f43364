package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names understood by the email worker.
const (
	Welcome           = "welcome"
	LoginNotification = "login_notification"
)

var tmpl = template.Must(template.New("emails").Parse(`
{{define "welcome"}}
<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;background:#f5f6f8;margin:0;padding:24px">
  <table width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center">
      <table width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px">
        <tr><td>
          <h2 style="margin:0 0 16px">Welcome to {{.AppName}}, {{.Name}}!</h2>
          <p style="color:#444;line-height:1.5">Your account <b>{{.Email}}</b> is ready.
          Start building your personal book catalog: add titles, authors and notes,
          and they will only ever be visible to you.</p>
          <p style="color:#888;font-size:12px;margin-top:24px">If you did not create this account, you can ignore this email.</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
{{end}}

{{define "login_notification"}}
<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;background:#f5f6f8;margin:0;padding:24px">
  <table width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center">
      <table width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px">
        <tr><td>
          <h2 style="margin:0 0 16px">New login to your {{.AppName}} account</h2>
          <p style="color:#444;line-height:1.5">Hi {{.Name}}, your account <b>{{.Email}}</b>
          was just used to sign in{{if .IP}} from IP <b>{{.IP}}</b>{{end}}{{if .Time}} at {{.Time}}{{end}}.</p>
          <p style="color:#888;font-size:12px;margin-top:24px">If this was not you, change your password immediately.</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
{{end}}
`))

// RenderHTML renders the named template with data.
func RenderHTML(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return buf.String(), nil
}

// SubjectFor returns the subject line for a known template name.
func SubjectFor(name string) string {
	switch name {
	case Welcome:
		return "Welcome to your book catalog"
	case LoginNotification:
		return "New login to your account"
	default:
		return "Notification"
	}
}
