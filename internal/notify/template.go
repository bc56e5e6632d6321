package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Confirmation 一位成員的報名確認通知，可序列化後放入 queue
type Confirmation struct {
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	EventID   int       `json:"event_id"`
	EventName string    `json:"event_name"`
	EventDate time.Time `json:"event_date"`
	Venue     string    `json:"venue"`
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<p>Dear {{.Name}},</p>
<p>Your registration for <strong>{{.EventName}}</strong> on <strong>{{.Date}}</strong> at <strong>{{.Venue}}</strong> is confirmed.</p>
<p><strong>User ID:</strong> {{.Code}}</p>
<p><strong>Event:</strong> {{.EventName}}</p>
{{- if .SiteURL}}
<p>Stay updated: <a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
{{- end}}
<p><strong>Regards,</strong><br/>Event Team</p>
`))

const confirmationDateLayout = "2 January 2006"

// RenderConfirmation 產生確認信
func RenderConfirmation(c Confirmation, siteURL string) (Message, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Confirmation
		Date    string
		SiteURL string
	}{
		Confirmation: c,
		Date:         c.EventDate.Format(confirmationDateLayout),
		SiteURL:      siteURL,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}
	return Message{
		To:      c.Email,
		Subject: fmt.Sprintf("You're Registered! %s", c.EventName),
		HTML:    buf.String(),
	}, nil
}
