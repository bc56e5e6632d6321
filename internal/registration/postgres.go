package registration

import (
	"context"

	"event-registration/internal/database"
	"event-registration/internal/model"
	"event-registration/internal/store"
)

// PostgresStore 以 store 套件的查詢實作 Store
type PostgresStore struct {
	db database.DB
}

func NewPostgresStore(db database.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) GetEvent(ctx context.Context, eventID int) (*model.Event, error) {
	return store.GetEventByID(ctx, s.db, eventID)
}

func (s *PostgresStore) Contacts(ctx context.Context, userIDs []int) ([]model.Contact, error) {
	return store.GetContacts(ctx, s.db, userIDs)
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return database.WithTx(ctx, s.db, func(q database.Querier) error {
		return fn(pgTx{q: q})
	})
}

type pgTx struct {
	q database.Querier
}

func (t pgTx) IsRegistered(ctx context.Context, userID, eventID int) (bool, error) {
	return store.IsRegistered(ctx, t.q, userID, eventID)
}

func (t pgTx) HasSinglePassRestriction(ctx context.Context, userID int) (bool, error) {
	return store.HasSinglePassRestriction(ctx, t.q, userID)
}

func (t pgTx) UserExists(ctx context.Context, userID int) (bool, error) {
	return store.UserExists(ctx, t.q, userID)
}

func (t pgTx) InsertRegistration(ctx context.Context, userID, eventID int) error {
	return store.InsertRegistration(ctx, t.q, userID, eventID)
}

func (t pgTx) InsertTeam(ctx context.Context, eventID int, members string) error {
	return store.InsertTeam(ctx, t.q, eventID, members)
}
