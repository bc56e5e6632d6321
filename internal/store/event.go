package store

import (
	"context"

	"event-registration/internal/database"
	"event-registration/internal/model"
)

const eventColumns = `id, name, date, to_char(time, 'HH24:MI:SS'), venue`

func ListEvents(ctx context.Context, db database.Querier) ([]model.Event, error) {
	rows, err := db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
	if err != nil {
		return nil, wrap("ListEvents", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Time, &e.Venue); err != nil {
			return nil, wrap("ListEvents", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListEvents", err)
	}
	return events, nil
}

func GetEventByID(ctx context.Context, db database.Querier, eventID int) (*model.Event, error) {
	e := &model.Event{}
	err := db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, eventID).
		Scan(&e.ID, &e.Name, &e.Date, &e.Time, &e.Venue)
	if err != nil {
		return nil, wrap("GetEventByID", err)
	}
	return e, nil
}

// CountTeams 回傳活動已被佔用的隊伍數
func CountTeams(ctx context.Context, db database.Querier, eventID int) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM teams WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, wrap("CountTeams", err)
	}
	return n, nil
}

// ListRegisteredEventNames 使用者已報名的活動名稱
func ListRegisteredEventNames(ctx context.Context, db database.Querier, userID int) ([]string, error) {
	rows, err := db.Query(ctx,
		`SELECT e.name FROM events e
		 JOIN registrations r ON e.id = r.event_id
		 WHERE r.user_id = $1
		 ORDER BY e.id`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListRegisteredEventNames", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, wrap("ListRegisteredEventNames", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListRegisteredEventNames", err)
	}
	return names, nil
}
