// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"event-registration/internal/cache"
	"event-registration/internal/database"
	"event-registration/internal/handler"
	"event-registration/internal/handler/admin"
	"event-registration/internal/handler/auth"
	"event-registration/internal/handler/events"
	"event-registration/internal/handler/users"
	"event-registration/internal/middleware"
)

// Deps 路由需要的所有協作者
type Deps struct {
	DB        database.DB
	Cache     cache.Cache
	Tokens    auth.Tokens
	Registrar events.Registrar
	Marker    admin.Marker

	AdminKey          string
	DisplayCodePrefix string
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.Tokens)
	requireAdmin := middleware.RequireAdmin(d.Tokens)

	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache), requireAuth)

	// 帳號
	api.POST("/register", auth.RegisterHandler(d.DB, d.Tokens, auth.RegisterOptions{
		AdminKey:          d.AdminKey,
		DisplayCodePrefix: d.DisplayCodePrefix,
	}))
	api.POST("/login", auth.LoginHandler(d.DB, d.Tokens))
	api.POST("/logout", auth.LogoutHandler(d.Tokens))
	api.POST("/forgot-password", auth.ForgotPasswordHandler(d.DB))
	api.POST("/reset-password", auth.ResetPasswordHandler(d.DB))

	// 活動
	apiEvents := api.Group("/events", requireAuth)
	apiEvents.GET("", events.ListEventsHandler(d.DB))
	apiEvents.POST("/register", events.RegisterEventHandler(d.Registrar))
	apiEvents.GET("/slots-taken/:eventId", events.SlotsTakenHandler(d.DB))

	// 管理員
	apiAdmin := api.Group("/admin", requireAdmin)
	apiAdmin.POST("/mark-attendance", admin.MarkAttendanceHandler(d.Marker))
	apiAdmin.GET("/overall-attendance", admin.OverallAttendanceHandler(d.DB))
	apiAdmin.GET("/attendance", admin.MyAttendanceHandler(d.DB))
	apiAdmin.GET("/profile", admin.AdminProfileHandler(d.DB))

	// 當前使用者
	apiUser := api.Group("/user", requireAuth)
	apiUser.GET("/get-profile", users.GetProfileHandler(d.DB, d.DisplayCodePrefix))
	apiUser.POST("/update-profile", users.UpdateProfileHandler(d.DB))
	apiUser.GET("/payment-status", users.PaymentStatusHandler(d.DB))
	apiUser.GET("/events", users.RegisteredEventsHandler(d.DB))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
