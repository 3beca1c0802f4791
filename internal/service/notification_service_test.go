package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
)

type captureSender struct {
	sent []Mail
	err  error
}

func (c *captureSender) Send(_ context.Context, mail Mail) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, mail)
	return nil
}

func TestNotificationFormatsBothParts(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(sender)
	err := svc.Send(context.Background(), Notification{
		To:          "alice@example.com",
		Title:       "Pay <rent>",
		Date:        "2024-03-15",
		Time:        "09:30",
		Description: "**bring** cheque <script>alert(1)</script>",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	mail := sender.sent[0]
	require.Equal(t, "alice@example.com", mail.To)
	require.Equal(t, "Reminder: Pay <rent>", mail.Subject)
	require.Contains(t, mail.Text, "Date: 2024-03-15")
	require.Contains(t, mail.Text, "Time: 09:30")
	require.Contains(t, mail.Text, "**bring** cheque")

	require.Contains(t, mail.HTML, "Pay &lt;rent&gt;")
	require.Contains(t, mail.HTML, "<strong>bring</strong>")
	require.NotContains(t, mail.HTML, "<script>")
}

func TestNotificationWithoutDescription(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(sender)
	err := svc.Send(context.Background(), Notification{To: "a@example.com", Title: "Call", Date: "2024-03-15", Time: "09:30"})
	require.NoError(t, err)
	require.NotContains(t, sender.sent[0].HTML, "margin-top: 15px")
}

func TestNotificationValidation(t *testing.T) {
	sender := &captureSender{}
	svc := NewNotificationService(sender)
	cases := []Notification{
		{To: "not-an-email", Title: "x", Date: "d", Time: "t"},
		{To: "a@example.com", Title: " ", Date: "d", Time: "t"},
		{To: "a@example.com", Title: "x", Time: "t"},
		{To: "a@example.com", Title: "x", Date: "d"},
	}
	for _, n := range cases {
		require.ErrorIs(t, svc.Send(context.Background(), n), appErr.ErrInvalid)
	}
	require.Empty(t, sender.sent)
}

func TestNotificationPropagatesSenderError(t *testing.T) {
	svc := NewNotificationService(&captureSender{err: appErr.Wrap(appErr.ErrDelivery, "failed to send notification", errors.New("eof"))})
	err := svc.Send(context.Background(), Notification{To: "a@example.com", Title: "x", Date: "d", Time: "t"})
	require.ErrorIs(t, err, appErr.ErrDelivery)

	svc = NewNotificationService(&captureSender{err: appErr.ErrMailNotConfigured})
	err = svc.Send(context.Background(), Notification{To: "a@example.com", Title: "x", Date: "d", Time: "t"})
	require.ErrorIs(t, err, appErr.ErrConfig)
}
