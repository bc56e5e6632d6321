// File: internal/model/registration.go
package model

import "time"

const AttendancePresent = "present"

type Registration struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	EventID   int       `db:"event_id" json:"event_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Team members 以逗號分隔的使用者 ID，例如 "12,15"
type Team struct {
	ID      int    `db:"id" json:"id"`
	EventID int    `db:"event_id" json:"event_id"`
	Members string `db:"members" json:"members"`
}

type Attendance struct {
	ID       int       `db:"id" json:"id"`
	EventID  int       `db:"event_id" json:"event_id"`
	UserID   int       `db:"user_id" json:"user_id"`
	AdminID  int       `db:"admin_id" json:"admin_id"`
	Status   string    `db:"attendance_status" json:"attendance_status"`
	MarkedAt time.Time `db:"marked_at" json:"marked_at"`
}

// AttendanceRecord 出席紀錄與使用者、活動名稱的 join 結果
type AttendanceRecord struct {
	ID        int       `json:"id"`
	UserName  string    `json:"user_name"`
	College   string    `json:"college"`
	EventName string    `json:"event_name"`
	Status    string    `json:"attendance_status"`
	MarkedAt  time.Time `json:"marked_at"`
}
