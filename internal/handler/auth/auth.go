// Package auth 註冊、登入、登出與密碼重設
package auth

import (
	"context"
	"time"

	"event-registration/internal/model"
	"event-registration/internal/service"
	"event-registration/internal/store"
)

// Tokens 由 service.TokenService 實作
type Tokens interface {
	IssueAccessToken(user model.User) (string, error)
	VerifyAccessToken(ctx context.Context, token string) (*service.Claims, error)
	RevokeToken(ctx context.Context, claims *service.Claims) error
	TTL() time.Duration
}

var (
	getUserByEmail   = store.GetUserByEmail
	createUser       = store.CreateUser
	setQRCode        = store.SetQRCode
	setResetToken    = store.SetResetToken
	resetPassword    = store.ResetPassword
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	newResetToken    = service.NewResetToken
	timeNow          = time.Now
)
