package service

import (
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/remindme/internal/config"
	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
)

type fakeRelay struct {
	ln   net.Listener
	wg   sync.WaitGroup
	mu   sync.Mutex
	auth string
	from string
	rcpt string
	data string
}

func startFakeRelay(t *testing.T) *fakeRelay {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	r := &fakeRelay{ln: ln}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			r.handle(conn)
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		r.wg.Wait()
	})
	return r
}

func (r *fakeRelay) port() int {
	return r.ln.Addr().(*net.TCPAddr).Port
}

func (r *fakeRelay) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP fake")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			_ = tp.PrintfLine("250-localhost")
			_ = tp.PrintfLine("250 AUTH PLAIN")
		case strings.HasPrefix(upper, "AUTH PLAIN "):
			r.mu.Lock()
			r.auth = strings.TrimSpace(line[len("AUTH PLAIN "):])
			r.mu.Unlock()
			_ = tp.PrintfLine("235 2.7.0 Authentication successful")
		case strings.HasPrefix(upper, "MAIL FROM:"):
			r.mu.Lock()
			r.from = line[len("MAIL FROM:"):]
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case strings.HasPrefix(upper, "RCPT TO:"):
			r.mu.Lock()
			r.rcpt = line[len("RCPT TO:"):]
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case upper == "DATA":
			_ = tp.PrintfLine("354 End data with <CR><LF>.<CR><LF>")
			lines, err := tp.ReadDotLines()
			if err != nil {
				return
			}
			r.mu.Lock()
			r.data = strings.Join(lines, "\r\n")
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK queued")
		case upper == "QUIT":
			_ = tp.PrintfLine("221 Bye")
			return
		default:
			_ = tp.PrintfLine("250 OK")
		}
	}
}

func TestSMTPSenderDeliversThroughRelay(t *testing.T) {
	relay := startFakeRelay(t)
	sender := NewEmailSender(config.MailConfig{
		Host:     "127.0.0.1",
		Port:     relay.port(),
		Username: "bot@example.com",
		Password: "pw",
	})

	err := sender.Send(context.Background(), Mail{
		To:      "alice@example.com",
		Subject: "Reminder: Pay rent",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	})
	require.NoError(t, err)

	relay.mu.Lock()
	defer relay.mu.Unlock()
	require.Equal(t, "<bot@example.com>", relay.from)
	require.Equal(t, "<alice@example.com>", relay.rcpt)
	creds, err := base64.StdEncoding.DecodeString(relay.auth)
	require.NoError(t, err)
	require.Equal(t, "\x00bot@example.com\x00pw", string(creds))
	require.Contains(t, relay.data, "Subject: Reminder: Pay rent")
	require.Contains(t, relay.data, "From: bot@example.com")
	require.Contains(t, relay.data, "multipart/alternative")
}

func TestSMTPSenderRequiresSettings(t *testing.T) {
	cases := []config.MailConfig{
		{Port: 587, Username: "u", Password: "p"},
		{Host: "smtp.example.com", Password: "p"},
		{Host: "smtp.example.com", Username: "u"},
	}
	for _, cfg := range cases {
		err := NewEmailSender(cfg).Send(context.Background(), Mail{To: "a@example.com"})
		require.ErrorIs(t, err, appErr.ErrConfig)
		require.Equal(t, "SMTP configuration is incomplete", err.Error())
	}
}

func TestSMTPSenderDeliveryFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	sender := NewEmailSender(config.MailConfig{Host: "127.0.0.1", Port: port, Username: "u", Password: "p"})
	err = sender.Send(context.Background(), Mail{To: "a@example.com", Text: "x"})
	require.ErrorIs(t, err, appErr.ErrDelivery)
}

func TestBuildMessageAlternativeParts(t *testing.T) {
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := buildMessage("bot@example.com", Mail{
		To:      "alice@example.com",
		Subject: "Reminder: Café",
		Text:    "Date: 2024-03-15",
		HTML:    "<p>Café</p>",
	}, date)
	require.NoError(t, err)

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	require.Equal(t, "Reminder: Café", subject)
	require.Equal(t, "alice@example.com", msg.Header.Get("To"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)

	reader := multipart.NewReader(msg.Body, params["boundary"])
	var types, bodies []string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		types = append(types, part.Header.Get("Content-Type"))
		bodies = append(bodies, string(content))
	}
	require.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
	require.Equal(t, []string{"Date: 2024-03-15", "<p>Café</p>"}, bodies)
}
