// Package attendance records that a registered participant showed up at an event.
package attendance

import (
	"context"
	"errors"

	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/model"
	"event-registration/internal/store"
)

// DefaultPreRegisteredEvents 只有事先報名者能簽到的活動；其他活動簽到時自動報名
var DefaultPreRegisteredEvents = []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

type Store interface {
	InTx(ctx context.Context, fn func(Tx) error) error
}

type Tx interface {
	UserIDByCode(ctx context.Context, code string) (int, error)
	GetEvent(ctx context.Context, eventID int) (*model.Event, error)
	IsRegistered(ctx context.Context, userID, eventID int) (bool, error)
	EnsureRegistration(ctx context.Context, userID, eventID int) error
	AttendanceExists(ctx context.Context, eventID, userID int) (bool, error)
	InsertAttendance(ctx context.Context, a *model.Attendance) error
}

type Marker struct {
	store         Store
	preRegistered map[int]bool
}

// NewMarker preRegistered 為 nil 時使用 DefaultPreRegisteredEvents
func NewMarker(s Store, preRegistered []int) *Marker {
	if preRegistered == nil {
		preRegistered = DefaultPreRegisteredEvents
	}
	set := make(map[int]bool, len(preRegistered))
	for _, id := range preRegistered {
		set[id] = true
	}
	return &Marker{store: s, preRegistered: set}
}

func (m *Marker) requiresRegistration(eventID int) bool {
	return m.preRegistered[eventID]
}

// Mark 以顯示代碼找到使用者並登記出席
func (m *Marker) Mark(ctx context.Context, adminID int, code string, eventID int) (*model.Attendance, error) {
	var rec *model.Attendance
	err := m.store.InTx(ctx, func(tx Tx) error {
		userID, err := tx.UserIDByCode(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.New(apperr.NotFound, "QR Code ID not found!")
			}
			return apperr.Wrap(err, "failed to look up user")
		}

		if _, err := tx.GetEvent(ctx, eventID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.New(apperr.NotFound, "Event ID not found!")
			}
			return apperr.Wrap(err, "failed to look up event")
		}

		if m.requiresRegistration(eventID) {
			ok, err := tx.IsRegistered(ctx, userID, eventID)
			if err != nil {
				return apperr.Wrap(err, "failed to check registration")
			}
			if !ok {
				return apperr.New(apperr.Forbidden, "User didn't register for this event.")
			}
		} else if err := tx.EnsureRegistration(ctx, userID, eventID); err != nil {
			return apperr.Wrap(err, "failed to register user")
		}

		marked, err := tx.AttendanceExists(ctx, eventID, userID)
		if err != nil {
			return apperr.Wrap(err, "failed to check attendance")
		}
		if marked {
			return apperr.New(apperr.Conflict, "Attendance already marked!")
		}

		a := &model.Attendance{
			EventID: eventID,
			UserID:  userID,
			AdminID: adminID,
			Status:  model.AttendancePresent,
		}
		if err := tx.InsertAttendance(ctx, a); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.New(apperr.Conflict, "Attendance already marked!")
			}
			return apperr.Wrap(err, "failed to mark attendance")
		}
		rec = a
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Wrap(err, "failed to mark attendance")
	}
	return rec, nil
}

// PostgresStore 以 store 套件的查詢實作 Store
type PostgresStore struct {
	db database.DB
}

func NewPostgresStore(db database.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) InTx(ctx context.Context, fn func(Tx) error) error {
	return database.WithTx(ctx, s.db, func(q database.Querier) error {
		return fn(pgTx{q: q})
	})
}

type pgTx struct {
	q database.Querier
}

func (t pgTx) UserIDByCode(ctx context.Context, code string) (int, error) {
	return store.GetUserIDByQRCode(ctx, t.q, code)
}

func (t pgTx) GetEvent(ctx context.Context, eventID int) (*model.Event, error) {
	return store.GetEventByID(ctx, t.q, eventID)
}

func (t pgTx) IsRegistered(ctx context.Context, userID, eventID int) (bool, error) {
	return store.IsRegistered(ctx, t.q, userID, eventID)
}

func (t pgTx) EnsureRegistration(ctx context.Context, userID, eventID int) error {
	return store.EnsureRegistration(ctx, t.q, userID, eventID)
}

func (t pgTx) AttendanceExists(ctx context.Context, eventID, userID int) (bool, error) {
	return store.AttendanceExists(ctx, t.q, eventID, userID)
}

func (t pgTx) InsertAttendance(ctx context.Context, a *model.Attendance) error {
	return store.InsertAttendance(ctx, t.q, a)
}
