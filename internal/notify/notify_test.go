package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"event-registration/internal/config"
	"event-registration/internal/model"
	"event-registration/internal/worker"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	smtpSendMail = smtp.SendMail
	readEnvFile = godotenv.Read
}

type recordMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var sampleEvent = model.Event{
	ID:    6,
	Name:  "Hackathon",
	Date:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	Venue: "Lab 3",
}

func TestRenderConfirmation(t *testing.T) {
	msg, err := RenderConfirmation(Confirmation{
		Name:      "Asha <script>",
		Email:     "asha@example.com",
		Code:      "EVT_7",
		EventName: "Hackathon",
		EventDate: sampleEvent.Date,
		Venue:     "Lab 3",
	}, "https://events.example.com")
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", msg.To)
	require.Contains(t, msg.Subject, "Hackathon")
	require.Contains(t, msg.HTML, "14 March 2025")
	require.Contains(t, msg.HTML, "EVT_7")
	require.Contains(t, msg.HTML, "Lab 3")
	require.Contains(t, msg.HTML, "https://events.example.com")
	require.NotContains(t, msg.HTML, "<script>")
}

func TestNewMailer(t *testing.T) {
	t.Cleanup(restoreGlobals)

	m, err := NewMailer(config.Notifier{Provider: "log"}, config.SMTP{}, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &LogMailer{}, m)

	_, err = NewMailer(config.Notifier{Provider: "pigeon"}, config.SMTP{}, zerolog.Nop())
	require.Error(t, err)

	m, err = NewMailer(
		config.Notifier{Provider: "smtp", FromAddress: "noreply@example.com", CredentialsSource: "env"},
		config.SMTP{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"},
		zerolog.Nop(),
	)
	require.NoError(t, err)
	sm := m.(*SMTPMailer)
	require.Equal(t, "smtp.example.com:587", sm.addr)
	require.Equal(t, "u", sm.username)

	readEnvFile = func(files ...string) (map[string]string, error) {
		require.Equal(t, []string{"/run/secrets/smtp"}, files)
		return map[string]string{"SMTP_USERNAME": "fu", "SMTP_PASSWORD": "fp"}, nil
	}
	m, err = NewMailer(
		config.Notifier{Provider: "smtp", CredentialsSource: "file:/run/secrets/smtp"},
		config.SMTP{Host: "h", Port: 25},
		zerolog.Nop(),
	)
	require.NoError(t, err)
	require.Equal(t, "fp", m.(*SMTPMailer).password)

	readEnvFile = func(...string) (map[string]string, error) { return nil, errors.New("missing") }
	_, err = NewMailer(config.Notifier{Provider: "smtp", CredentialsSource: "file:/x"}, config.SMTP{}, zerolog.Nop())
	require.ErrorContains(t, err, "missing")

	_, err = NewMailer(config.Notifier{Provider: "smtp", CredentialsSource: "vault"}, config.SMTP{}, zerolog.Nop())
	require.Error(t, err)
}

func TestSMTPMailerSend(t *testing.T) {
	t.Cleanup(restoreGlobals)
	var gotAddr, gotFrom string
	var gotBody []byte
	smtpSendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotBody = addr, from, msg
		require.NotNil(t, a)
		require.Equal(t, []string{"b@example.com"}, to)
		return nil
	}
	m := &SMTPMailer{addr: "h:25", host: "h", from: "a@example.com", username: "u", password: "p"}
	require.NoError(t, m.Send(context.Background(), Message{To: "b@example.com", Subject: "Hi", HTML: "<p>x</p>"}))
	require.Equal(t, "h:25", gotAddr)
	require.Equal(t, "a@example.com", gotFrom)
	require.True(t, strings.Contains(string(gotBody), "Content-Type: text/html"))

	smtpSendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	require.ErrorContains(t, m.Send(context.Background(), Message{To: "b@example.com"}), "refused")
}

func TestDispatcherSync(t *testing.T) {
	var logs bytes.Buffer
	mailer := &recordMailer{}
	d := NewDispatcher(mailer, "", zerolog.New(&logs))

	d.RegistrationConfirmed(context.Background(), sampleEvent, []model.Contact{
		{ID: 1, Name: "A", Email: "a@example.com", QRCodeID: "EVT_1"},
		{ID: 2, Name: "B"},
	})
	require.Equal(t, 1, mailer.count())
	require.Contains(t, logs.String(), "member has no email")
}

func TestDispatcherSendFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	d := NewDispatcher(&recordMailer{err: errors.New("smtp down")}, "", zerolog.New(&logs))
	d.RegistrationConfirmed(context.Background(), sampleEvent, []model.Contact{{ID: 3, Email: "c@example.com"}})

	out := logs.String()
	require.Contains(t, out, "failed to send confirmation email")
	require.Contains(t, out, `"user_id":3`)
	require.Contains(t, out, `"event_id":6`)
}

func TestDispatcherPoolQueue(t *testing.T) {
	mailer := &recordMailer{}
	d := NewDispatcher(mailer, "", zerolog.Nop())
	pool := worker.NewPool(2, 8, zerolog.Nop())
	d.UseQueue(NewPoolQueue(pool, d.Deliver))

	d.RegistrationConfirmed(context.Background(), sampleEvent, []model.Contact{
		{ID: 1, Email: "a@example.com"},
		{ID: 2, Email: "b@example.com"},
		{ID: 3, Email: "c@example.com"},
	})
	pool.Stop()
	require.Equal(t, 3, mailer.count())
}

type failingQueue struct{}

func (failingQueue) Enqueue(context.Context, Confirmation) error { return worker.ErrQueueFull }

func TestDispatcherEnqueueFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	d := NewDispatcher(&recordMailer{}, "", zerolog.New(&logs))
	d.UseQueue(failingQueue{})
	d.RegistrationConfirmed(context.Background(), sampleEvent, []model.Contact{{ID: 9, Email: "z@example.com"}})
	require.Contains(t, logs.String(), "failed to enqueue confirmation email")
}

type loopback struct {
	handler func(context.Context, []byte) error
	bodies  [][]byte
}

func (l *loopback) Publish(_ context.Context, body []byte) error {
	l.bodies = append(l.bodies, body)
	return nil
}

func (l *loopback) Consume(_ context.Context, h func(context.Context, []byte) error) error {
	l.handler = h
	return nil
}

func TestAMQPQueueRoundTrip(t *testing.T) {
	mailer := &recordMailer{}
	d := NewDispatcher(mailer, "", zerolog.Nop())
	lb := &loopback{}
	d.UseQueue(NewAMQPQueue(lb))
	require.NoError(t, Consume(context.Background(), lb, d.Deliver))

	d.RegistrationConfirmed(context.Background(), sampleEvent, []model.Contact{{ID: 4, Name: "D", Email: "d@example.com"}})
	require.Len(t, lb.bodies, 1)

	var c Confirmation
	require.NoError(t, json.Unmarshal(lb.bodies[0], &c))
	require.Equal(t, "Hackathon", c.EventName)

	require.NoError(t, lb.handler(context.Background(), lb.bodies[0]))
	require.Equal(t, 1, mailer.count())
	require.Error(t, lb.handler(context.Background(), []byte("{")))
}
