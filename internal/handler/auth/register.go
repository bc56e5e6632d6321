package auth

import (
	"errors"
	"net/http"

	"event-registration/internal/api"
	"event-registration/internal/apperr"
	"event-registration/internal/database"
	"event-registration/internal/handler"
	"event-registration/internal/model"
	"event-registration/internal/service"
	"event-registration/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RegisterOptions 註冊時需要的設定
type RegisterOptions struct {
	AdminKey          string
	DisplayCodePrefix string
}

// RegisterHandler 建立帳號並指派顯示代碼
// @Summary     註冊帳號
// @Description 建立使用者 (或以 admin_key 建立管理員)，回傳 session token 與顯示代碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.RegisterResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /register [post]
func RegisterHandler(db database.DB, tokens Tokens, opts RegisterOptions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		role := req.Role
		if role == "" {
			role = model.RoleUser
		}
		if role == model.RoleAdmin && (opts.AdminKey == "" || req.AdminKey != opts.AdminKey) {
			return handler.RespondError(c, apperr.New(apperr.Forbidden, "Invalid admin key!"))
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "failed to hash password"))
		}

		ctx := c.Request().Context()
		user := &model.User{
			Name:          req.Name,
			College:       req.College,
			Department:    req.Department,
			RegNo:         req.RegNo,
			Year:          req.Year,
			Phone:         req.Phone,
			Email:         req.Email,
			PasswordHash:  hash,
			Accommodation: req.Accommodation,
			Role:          role,
			PassType:      req.PassType,
			TransactionID: req.TransactionID,
		}
		err = database.WithTx(ctx, db, func(q database.Querier) error {
			created, err := createUser(ctx, q, user)
			if err != nil {
				return err
			}
			code := service.DisplayCode(opts.DisplayCodePrefix, created.ID)
			if err := setQRCode(ctx, q, created.ID, code); err != nil {
				return err
			}
			created.QRCodeID = &code
			user = created
			return nil
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return handler.RespondError(c, apperr.New(apperr.Conflict, "User with this email already exists."))
			}
			return handler.RespondError(c, apperr.Wrap(err, "failed to create user"))
		}

		token, err := tokens.IssueAccessToken(*user)
		if err != nil {
			return handler.RespondError(c, apperr.Wrap(err, "failed to issue token"))
		}

		zerolog.Ctx(ctx).Info().
			Int("user_id", user.ID).
			Str("role", user.Role).
			Msg("account registered")

		msg := "User registered successfully!"
		if user.IsAdmin() {
			msg = "Admin registered successfully!"
		}
		return c.JSON(http.StatusCreated, api.RegisterResponse{
			Message:  msg,
			Token:    token,
			QRCodeID: *user.QRCodeID,
		})
	}
}
