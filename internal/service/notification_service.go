package service

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/xxxsen/common/logutil"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/xxxsen/remindme/internal/pkg/validate"
)

type Notification struct {
	To          string `json:"to_email" validate:"required,email"`
	Title       string `json:"reminder_title" validate:"required"`
	Date        string `json:"reminder_date" validate:"required"`
	Time        string `json:"reminder_time" validate:"required"`
	Description string `json:"reminder_description"`
}

var notificationHTML = template.Must(template.New("notification").Parse(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 8px;">
      <h2 style="color: #0EA5E9; margin-bottom: 20px;">Reminder</h2>
      <h3 style="color: #1e293b; margin-bottom: 15px;">{{.Title}}</h3>
      <div style="background-color: #f1f5f9; padding: 15px; border-radius: 6px; margin-bottom: 15px;">
        <p style="margin: 5px 0;"><strong>Date:</strong> {{.Date}}</p>
        <p style="margin: 5px 0;"><strong>Time:</strong> {{.Time}}</p>
      </div>
      {{- if .Description}}
      <div style="color: #475569; margin-top: 15px;">{{.Description}}</div>
      {{- end}}
      <hr style="border: none; border-top: 1px solid #e2e8f0; margin: 20px 0;">
      <p style="color: #94a3b8; font-size: 12px; text-align: center;">RemindMe - your reminder service</p>
    </div>
  </body>
</html>
`))

type NotificationService struct {
	sender   EmailSender
	markdown goldmark.Markdown
}

func NewNotificationService(sender EmailSender) *NotificationService {
	return &NotificationService{sender: sender, markdown: goldmark.New()}
}

func (s *NotificationService) Send(ctx context.Context, n Notification) error {
	n.To = strings.TrimSpace(n.To)
	n.Title = strings.TrimSpace(n.Title)
	n.Date = strings.TrimSpace(n.Date)
	n.Time = strings.TrimSpace(n.Time)
	n.Description = strings.TrimSpace(n.Description)
	if err := validate.Struct(n); err != nil {
		return err
	}
	htmlBody, err := s.renderHTML(n)
	if err != nil {
		return err
	}
	mail := Mail{
		To:      n.To,
		Subject: "Reminder: " + n.Title,
		Text:    renderText(n),
		HTML:    htmlBody,
	}
	if err := s.sender.Send(ctx, mail); err != nil {
		logutil.GetLogger(ctx).Error("send notification failed", zap.Error(err))
		return err
	}
	logutil.GetLogger(ctx).Info("notification sent", zap.String("title", n.Title))
	return nil
}

func renderText(n Notification) string {
	var b strings.Builder
	b.WriteString("Reminder: " + n.Title + "\n\n")
	b.WriteString("Date: " + n.Date + "\n")
	b.WriteString("Time: " + n.Time + "\n")
	if n.Description != "" {
		b.WriteString("\n" + n.Description + "\n")
	}
	b.WriteString("\n---\nRemindMe - your reminder service\n")
	return b.String()
}

func (s *NotificationService) renderHTML(n Notification) (string, error) {
	var description template.HTML
	if n.Description != "" {
		var md bytes.Buffer
		if err := s.markdown.Convert([]byte(n.Description), &md); err != nil {
			return "", err
		}
		// goldmark drops raw HTML unless configured otherwise
		description = template.HTML(md.String())
	}
	var out bytes.Buffer
	err := notificationHTML.Execute(&out, struct {
		Title       string
		Date        string
		Time        string
		Description template.HTML
	}{n.Title, n.Date, n.Time, description})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
