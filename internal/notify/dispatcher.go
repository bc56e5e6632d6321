package notify

import (
	"context"

	"event-registration/internal/model"

	"github.com/rs/zerolog"
)

// Dispatcher 在報名提交後為每位成員排入確認信；所有失敗只記錄
type Dispatcher struct {
	queue   Queue
	mailer  Mailer
	siteURL string
	log     zerolog.Logger
}

func NewDispatcher(mailer Mailer, siteURL string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, siteURL: siteURL, log: log}
}

// UseQueue 設定非同步佇列；未設定時同步寄送
func (d *Dispatcher) UseQueue(q Queue) { d.queue = q }

func (d *Dispatcher) RegistrationConfirmed(ctx context.Context, event model.Event, members []model.Contact) {
	for _, m := range members {
		c := Confirmation{
			UserID:    m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Code:      m.QRCodeID,
			EventID:   event.ID,
			EventName: event.Name,
			EventDate: event.Date,
			Venue:     event.Venue,
		}
		if d.queue == nil {
			d.Deliver(ctx, c)
			continue
		}
		if err := d.queue.Enqueue(ctx, c); err != nil {
			d.log.Warn().Err(err).
				Int("user_id", c.UserID).
				Int("event_id", c.EventID).
				Str("email", c.Email).
				Msg("failed to enqueue confirmation email")
		}
	}
}

// Deliver 產生並寄出一封確認信
func (d *Dispatcher) Deliver(ctx context.Context, c Confirmation) {
	l := d.log.With().
		Int("user_id", c.UserID).
		Int("event_id", c.EventID).
		Str("email", c.Email).
		Logger()

	if c.Email == "" {
		l.Warn().Msg("member has no email, skipping confirmation")
		return
	}
	msg, err := RenderConfirmation(c, d.siteURL)
	if err != nil {
		l.Warn().Err(err).Msg("failed to render confirmation email")
		return
	}
	if err := d.mailer.Send(ctx, msg); err != nil {
		l.Warn().Err(err).Msg("failed to send confirmation email")
		return
	}
	l.Info().Msg("confirmation email sent")
}
