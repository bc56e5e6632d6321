package store

import (
	"context"

	"event-registration/internal/database"
	"event-registration/internal/model"
)

func AttendanceExists(ctx context.Context, db database.Querier, eventID, userID int) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance WHERE event_id = $1 AND user_id = $2)`,
		eventID,
		userID,
	).Scan(&ok)
	if err != nil {
		return false, wrap("AttendanceExists", err)
	}
	return ok, nil
}

func InsertAttendance(ctx context.Context, db database.Querier, a *model.Attendance) error {
	err := db.QueryRow(ctx,
		`INSERT INTO attendance (event_id, user_id, admin_id, attendance_status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, marked_at`,
		a.EventID,
		a.UserID,
		a.AdminID,
		a.Status,
	).Scan(&a.ID, &a.MarkedAt)
	if err != nil {
		return wrap("InsertAttendance", err)
	}
	return nil
}

const attendanceRecordQuery = `SELECT a.id, u.name, u.college, e.name, a.attendance_status, a.marked_at
	FROM attendance a
	JOIN users u ON a.user_id = u.id
	JOIN events e ON a.event_id = e.id`

// ListAttendance 全部出席紀錄，最新在前
func ListAttendance(ctx context.Context, db database.Querier) ([]model.AttendanceRecord, error) {
	return queryAttendance(ctx, db, "ListAttendance", attendanceRecordQuery+` ORDER BY a.marked_at DESC`)
}

// ListAttendanceByAdmin 指定管理員所登記的出席紀錄
func ListAttendanceByAdmin(ctx context.Context, db database.Querier, adminID int) ([]model.AttendanceRecord, error) {
	return queryAttendance(ctx, db, "ListAttendanceByAdmin",
		attendanceRecordQuery+` WHERE a.admin_id = $1 ORDER BY a.marked_at DESC`, adminID)
}

func queryAttendance(ctx context.Context, db database.Querier, op, sql string, args ...any) ([]model.AttendanceRecord, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var r model.AttendanceRecord
		if err := rows.Scan(&r.ID, &r.UserName, &r.College, &r.EventName, &r.Status, &r.MarkedAt); err != nil {
			return nil, wrap(op, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return records, nil
}
