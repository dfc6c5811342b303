package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(
		`<p>Namaste {{.Username}},</p>
<p>Thank you for subscribing to the Serene Yoga Studio newsletter. Expect class news, workshop dates and the occasional journal post.</p>
<p>See you on the mat.</p>`))

	enquiryTmpl = template.Must(template.New("enquiry").Parse(
		`<p>Hi {{.Username}},</p>
<p>We received your enquiry for <strong>{{.Class}}</strong> on {{.Date}} at {{.Time}}.</p>
<p>Our enquiry team will reach out to you very soon.</p>`))
)

// Welcome builds the newsletter welcome message.
func Welcome(to, username string) (SendRequest, error) {
	html, err := render(welcomeTmpl, struct{ Username string }{username})
	if err != nil {
		return SendRequest{}, err
	}
	return SendRequest{To: []string{to}, Subject: "Welcome to the Serene Yoga newsletter", HTML: html}, nil
}

// EnquiryReceived builds the acknowledgement sent after a class enquiry.
func EnquiryReceived(to, username, class, date, clock string) (SendRequest, error) {
	html, err := render(enquiryTmpl, struct{ Username, Class, Date, Time string }{username, class, date, clock})
	if err != nil {
		return SendRequest{}, err
	}
	return SendRequest{To: []string{to}, Subject: fmt.Sprintf("Your enquiry: %s", class), HTML: html}, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
