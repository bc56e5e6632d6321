package registration

import (
	"context"
	"strings"
	"testing"

	"event-registration/internal/apperr"
	"event-registration/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type boolRow bool

func (b boolRow) Scan(dest ...any) error {
	*dest[0].(*bool) = bool(b)
	return nil
}

func TestPostgresStoreRollsBackOnRuleFailure(t *testing.T) {
	tx := &database.FakeTx{}
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.True(t, strings.Contains(sql, "FROM registrations"), sql)
			return boolRow(true)
		},
	}
	tx.FakeDB = db
	db.BeginFn = func(context.Context) (database.Tx, error) { return tx, nil }

	s := NewPostgresStore(db)
	err := s.InTx(context.Background(), func(t2 Tx) error {
		_, err := (&Engine{}).check(context.Background(), t2, Request{UserID: 1, EventID: 2}, PolicyFor(2))
		return err
	})
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
	require.True(t, tx.RolledBack)
	require.False(t, tx.Committed)
}

func TestPostgresStoreCommits(t *testing.T) {
	tx := &database.FakeTx{}
	var execs []string
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			execs = append(execs, sql)
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}
	tx.FakeDB = db
	db.BeginFn = func(context.Context) (database.Tx, error) { return tx, nil }

	s := NewPostgresStore(db)
	err := s.InTx(context.Background(), func(t2 Tx) error {
		if err := t2.InsertRegistration(context.Background(), 1, 3); err != nil {
			return err
		}
		return t2.InsertTeam(context.Background(), 3, "1")
	})
	require.NoError(t, err)
	require.True(t, tx.Committed)
	require.Len(t, execs, 2)
}
