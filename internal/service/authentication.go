// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-registration/internal/cache"
	"event-registration/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	timeNow         = time.Now
	newTokenID      = func() string { return uuid.NewString() }
	parseWithClaims = jwt.ParseWithClaims
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)

const revokedKeyPrefix = "revoked:"

// Claims 定義 JWT 負載內容；jti 放在 RegisteredClaims.ID
type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool { return c.Role == model.RoleAdmin }

// TokenService 簽發、驗證與撤銷 session token
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist cache.Cache
}

func NewTokenService(secret string, ttl time.Duration, denylist cache.Cache) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, denylist: denylist}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// IssueAccessToken 依據使用者資訊產生 HS256 JWT
func (s *TokenService) IssueAccessToken(user model.User) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("jwt secret not set")
	}

	now := timeNow()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyAccessToken 驗證簽章與期限，並確認 token 未被撤銷
func (s *TokenService) VerifyAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	revoked, err := s.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// RevokeToken 將 jti 放入 Redis denylist，存活時間為 token 剩餘效期
func (s *TokenService) RevokeToken(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(timeNow())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Set(ctx, revokedKeyPrefix+claims.ID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("RevokeToken: %w", err)
	}
	return nil
}

func (s *TokenService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := s.denylist.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
	return n > 0, nil
}
