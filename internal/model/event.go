// File: internal/model/event.go
package model

import "time"

type Event struct {
	ID    int       `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Date  time.Time `db:"date" json:"date"`
	Time  string    `db:"time" json:"time"`
	Venue string    `db:"venue" json:"venue"`
}
