// Package registration decides whether a user (and teammates) may register for an event
// and records the registration atomically.
package registration

import (
	"context"
	"errors"

	"event-registration/internal/apperr"
	"event-registration/internal/model"
	"event-registration/internal/store"

	"github.com/rs/zerolog"
)

type Store interface {
	GetEvent(ctx context.Context, eventID int) (*model.Event, error)
	InTx(ctx context.Context, fn func(tx Tx) error) error
	Contacts(ctx context.Context, userIDs []int) ([]model.Contact, error)
}

// Tx 交易內可用的查詢
type Tx interface {
	IsRegistered(ctx context.Context, userID, eventID int) (bool, error)
	HasSinglePassRestriction(ctx context.Context, userID int) (bool, error)
	UserExists(ctx context.Context, userID int) (bool, error)
	InsertRegistration(ctx context.Context, userID, eventID int) error
	InsertTeam(ctx context.Context, eventID int, members string) error
}

// Notifier 於交易提交後被呼叫，不得影響報名結果
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, event model.Event, members []model.Contact)
}

type Request struct {
	UserID    int
	EventID   int
	Teammates []string
}

type Result struct {
	Team    string `json:"team"`
	Members []int  `json:"members"`
}

type Engine struct {
	store    Store
	notifier Notifier
	log      zerolog.Logger
}

func NewEngine(s Store, n Notifier, log zerolog.Logger) *Engine {
	return &Engine{store: s, notifier: n, log: log}
}

func (e *Engine) Register(ctx context.Context, req Request) (*Result, error) {
	event, err := e.store.GetEvent(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Event not found!")
		}
		return nil, apperr.Wrap(err, "failed to load event")
	}
	policy := PolicyFor(event.ID)

	var members []int
	err = e.store.InTx(ctx, func(tx Tx) error {
		var err error
		members, err = e.check(ctx, tx, req, policy)
		if err != nil {
			return err
		}
		for _, id := range members {
			if err := tx.InsertRegistration(ctx, id, event.ID); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					return apperr.New(apperr.Conflict, "User already registered!")
				}
				return apperr.Wrap(err, "failed to save registration")
			}
		}
		if err := tx.InsertTeam(ctx, event.ID, joinMembers(members)); err != nil {
			return apperr.Wrap(err, "failed to save team")
		}
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Wrap(err, "failed to save registration")
	}

	e.notify(ctx, *event, members)
	return &Result{Team: joinMembers(members), Members: members}, nil
}

// check 依序執行所有報名規則，回傳含發起人在內的成員 ID
func (e *Engine) check(ctx context.Context, tx Tx, req Request, policy Policy) ([]int, error) {
	registered, err := tx.IsRegistered(ctx, req.UserID, req.EventID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check registration")
	}
	if registered {
		return nil, apperr.New(apperr.Conflict, "User already registered!")
	}

	restricted, err := tx.HasSinglePassRestriction(ctx, req.UserID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check pass")
	}
	if restricted {
		return nil, apperr.New(apperr.Forbidden, "Single Event Pass Holders Can Only Register For One Event.")
	}

	teammates, err := ParseTeammates(req.Teammates)
	if err != nil {
		return nil, err
	}
	members := append([]int{req.UserID}, teammates...)
	if hasDuplicates(members) {
		return nil, apperr.New(apperr.Validation, "Duplicate teammate IDs found.")
	}
	if len(teammates) > policy.MaxTeammates {
		return nil, apperr.New(apperr.Validation, "Max %d teammate(s) allowed.", policy.MaxTeammates)
	}
	if !policy.SoloAllowed && len(teammates) == 0 {
		return nil, apperr.New(apperr.Validation, "All teammates are required for this event.")
	}

	for _, t := range teammates {
		exists, err := tx.UserExists(ctx, t)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to check teammate")
		}
		if !exists {
			return nil, apperr.New(apperr.NotFound, "Teammate with ID %d does not exist.", t)
		}
		registered, err := tx.IsRegistered(ctx, t, req.EventID)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to check teammate")
		}
		if registered {
			return nil, apperr.New(apperr.Conflict, "Teammate with ID %d already registered.", t)
		}
		restricted, err := tx.HasSinglePassRestriction(ctx, t)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to check teammate")
		}
		if restricted {
			return nil, apperr.New(apperr.Forbidden, "Teammate with ID %d has a single event pass and is already registered.", t)
		}
	}
	return members, nil
}

func (e *Engine) notify(ctx context.Context, event model.Event, members []int) {
	if e.notifier == nil {
		return
	}
	contacts, err := e.store.Contacts(ctx, members)
	if err != nil {
		e.log.Warn().Err(err).
			Int("event_id", event.ID).
			Ints("members", members).
			Msg("failed to load member contacts, skipping notifications")
		return
	}
	e.notifier.RegistrationConfirmed(context.WithoutCancel(ctx), event, contacts)
}
