package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

var randRead = rand.Read

const (
	ResetTokenTTL    = time.Hour
	resetSuffixChars = 5
)

// ResetToken 密碼重設 token = 手機號碼 + 隨機 hex 字串
type ResetToken struct {
	Token   string
	Suffix  string
	Expires time.Time
}

func NewResetToken(phone string) (*ResetToken, error) {
	buf := make([]byte, 3)
	if _, err := randRead(buf); err != nil {
		return nil, fmt.Errorf("NewResetToken: %w", err)
	}
	suffix := hex.EncodeToString(buf)[:resetSuffixChars]
	return &ResetToken{
		Token:   phone + suffix,
		Suffix:  suffix,
		Expires: timeNow().Add(ResetTokenTTL),
	}, nil
}

// DisplayCode 使用者的顯示代碼，例如 EVT_12
func DisplayCode(prefix string, userID int) string {
	return fmt.Sprintf("%s%d", prefix, userID)
}
