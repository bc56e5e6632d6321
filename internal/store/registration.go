package store

import (
	"context"

	"event-registration/internal/database"
	"event-registration/internal/model"
)

func IsRegistered(ctx context.Context, db database.Querier, userID, eventID int) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2)`,
		userID,
		eventID,
	).Scan(&ok)
	if err != nil {
		return false, wrap("IsRegistered", err)
	}
	return ok, nil
}

func CountUserRegistrations(ctx context.Context, db database.Querier, userID int) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, wrap("CountUserRegistrations", err)
	}
	return n, nil
}

// HasSinglePassRestriction 單場票持有者只要已有任一筆報名即受限；查無使用者視為不受限
func HasSinglePassRestriction(ctx context.Context, db database.Querier, userID int) (bool, error) {
	var pass string
	err := db.QueryRow(ctx, `SELECT pass_type FROM users WHERE id = $1`, userID).Scan(&pass)
	if err != nil {
		err = wrap("HasSinglePassRestriction", err)
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if pass != model.PassSingle {
		return false, nil
	}
	n, err := CountUserRegistrations(ctx, db, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func InsertRegistration(ctx context.Context, db database.Querier, userID, eventID int) error {
	_, err := db.Exec(ctx,
		`INSERT INTO registrations (user_id, event_id) VALUES ($1, $2)`,
		userID,
		eventID,
	)
	if err != nil {
		return wrap("InsertRegistration", err)
	}
	return nil
}

// EnsureRegistration 不存在時才新增報名 (idempotent)
func EnsureRegistration(ctx context.Context, db database.Querier, userID, eventID int) error {
	_, err := db.Exec(ctx,
		`INSERT INTO registrations (user_id, event_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, event_id) DO NOTHING`,
		userID,
		eventID,
	)
	if err != nil {
		return wrap("EnsureRegistration", err)
	}
	return nil
}

func InsertTeam(ctx context.Context, db database.Querier, eventID int, members string) error {
	_, err := db.Exec(ctx, `INSERT INTO teams (event_id, members) VALUES ($1, $2)`, eventID, members)
	if err != nil {
		return wrap("InsertTeam", err)
	}
	return nil
}
