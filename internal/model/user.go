// File: internal/model/user.go
package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// PassSingle 單場票：持有者一生只能報名一個活動
	PassSingle = "single"
)

type User struct {
	ID            int        `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	College       string     `db:"college" json:"college"`
	Department    string     `db:"department" json:"department"`
	RegNo         string     `db:"reg_no" json:"reg_no"`
	Year          string     `db:"year" json:"year"`
	Phone         string     `db:"phone" json:"phone"`
	Email         string     `db:"email" json:"email"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	Accommodation string     `db:"accommodation" json:"accommodation"`
	Role          string     `db:"role" json:"role"`
	PassType      string     `db:"pass_type" json:"pass_type"`
	TransactionID string     `db:"transaction_id" json:"transaction_id"`
	QRCodeID      *string    `db:"qr_code_id" json:"qr_code_id"`
	PaymentStatus string     `db:"payment_status" json:"payment_status"`
	ResetToken    *string    `db:"reset_token" json:"-"`
	ResetExpires  *time.Time `db:"reset_expires" json:"-"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Contact 寄送通知所需的最少欄位
type Contact struct {
	ID       int
	Name     string
	Email    string
	QRCodeID string
}
