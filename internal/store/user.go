package store

import (
	"context"
	"time"

	"event-registration/internal/database"
	"event-registration/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, college, department, reg_no, year, phone, email, password_hash,
	accommodation, role, pass_type, transaction_id, qr_code_id, payment_status,
	reset_token, reset_expires, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.College,
		&u.Department,
		&u.RegNo,
		&u.Year,
		&u.Phone,
		&u.Email,
		&u.PasswordHash,
		&u.Accommodation,
		&u.Role,
		&u.PassType,
		&u.TransactionID,
		&u.QRCodeID,
		&u.PaymentStatus,
		&u.ResetToken,
		&u.ResetExpires,
		&u.CreatedAt,
	)
	return u, err
}

func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

// GetUserIDByQRCode 以顯示代碼查詢使用者 ID
func GetUserIDByQRCode(ctx context.Context, db database.Querier, code string) (int, error) {
	var id int
	if err := db.QueryRow(ctx, `SELECT id FROM users WHERE qr_code_id = $1`, code).Scan(&id); err != nil {
		return 0, wrap("GetUserIDByQRCode", err)
	}
	return id, nil
}

func UserExists(ctx context.Context, db database.Querier, userID int) (bool, error) {
	var ok bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&ok); err != nil {
		return false, wrap("UserExists", err)
	}
	return ok, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, college, department, reg_no, year, phone, email, password_hash,
		                    accommodation, role, pass_type, transaction_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, payment_status, created_at`,
		u.Name,
		u.College,
		u.Department,
		u.RegNo,
		u.Year,
		u.Phone,
		u.Email,
		u.PasswordHash,
		u.Accommodation,
		u.Role,
		u.PassType,
		u.TransactionID,
	)
	if err := row.Scan(&u.ID, &u.PaymentStatus, &u.CreatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

func SetQRCode(ctx context.Context, db database.Querier, userID int, code string) error {
	if _, err := db.Exec(ctx, `UPDATE users SET qr_code_id = $1 WHERE id = $2`, code, userID); err != nil {
		return wrap("SetQRCode", err)
	}
	return nil
}

// ProfileUpdate 使用者可自行修改的欄位
type ProfileUpdate struct {
	Name          string
	College       string
	Year          string
	Accommodation string
	Phone         string
}

func UpdateProfile(ctx context.Context, db database.Querier, userID int, p ProfileUpdate) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET name = $1, college = $2, year = $3, accommodation = $4, phone = $5
		 WHERE id = $6`,
		p.Name,
		p.College,
		p.Year,
		p.Accommodation,
		p.Phone,
		userID,
	)
	if err != nil {
		return wrap("UpdateProfile", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("UpdateProfile", pgx.ErrNoRows)
	}
	return nil
}

func SetResetToken(ctx context.Context, db database.Querier, userID int, token string, expires time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET reset_token = $1, reset_expires = $2 WHERE id = $3`,
		token,
		expires,
		userID,
	)
	if err != nil {
		return wrap("SetResetToken", err)
	}
	return nil
}

// ResetPassword 驗證 token 未過期後更新密碼並清除 token；不符合時回傳 ErrNotFound
func ResetPassword(ctx context.Context, db database.Querier, email, token string, now time.Time, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, reset_token = NULL, reset_expires = NULL
		 WHERE email = $2 AND reset_token = $3 AND reset_expires > $4`,
		passwordHash,
		email,
		token,
		now,
	)
	if err != nil {
		return wrap("ResetPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("ResetPassword", pgx.ErrNoRows)
	}
	return nil
}

// GetContacts 取得多位使用者的通知聯絡資訊
func GetContacts(ctx context.Context, db database.Querier, userIDs []int) ([]model.Contact, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, email, COALESCE(qr_code_id, '') FROM users WHERE id = ANY($1) ORDER BY id`,
		userIDs,
	)
	if err != nil {
		return nil, wrap("GetContacts", err)
	}
	defer rows.Close()

	var out []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.QRCodeID); err != nil {
			return nil, wrap("GetContacts", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("GetContacts", err)
	}
	return out, nil
}

func GetPaymentStatus(ctx context.Context, db database.Querier, userID int) (string, error) {
	var status string
	if err := db.QueryRow(ctx, `SELECT payment_status FROM users WHERE id = $1`, userID).Scan(&status); err != nil {
		return "", wrap("GetPaymentStatus", err)
	}
	return status, nil
}
