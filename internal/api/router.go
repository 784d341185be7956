package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/handler"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/middleware"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/credential"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/session"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/voice"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/infrastructure/config"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb and cache may be nil when the profile cache is disabled.
func NewRouter(cfg *config.Config, backend *upstream.Client, cache session.ProfileCache,
	rdb *redis.Client, log zerolog.Logger) *echo.Echo {

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(middleware.Sessions(credential.NewResolver(log), cfg.Cookie.Secure, cfg.Cookie.MaxAge))
	e.Use(middleware.Impersonation(log))

	// --- Dependencies ---
	bootstrapper := session.NewBootstrapper(backend, cache, log)
	guard := middleware.NewGuard(bootstrapper, log)

	authHandler := handler.NewAuthHandler(backend, log)
	superAdminHandler := handler.NewSuperAdminHandler(backend)
	adminHandler := handler.NewAdminHandler(backend)
	clientHandler := handler.NewClientHandler(backend)
	mobileHandler := handler.NewMobileHandler(backend)
	chatHandler := handler.NewChatHandler(backend, log)
	voiceHandler := handler.NewVoiceHandler(backend, voice.NewSessions(), log)
	registerHandler := handler.NewRegisterHandler(backend)
	uploadHandler := handler.NewUploadHandler(backend, log)

	// --- Entry points ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, domain.RoleUser.LoginPath())
	})
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Guest-only auth surface ---
	guest := guard.RequireGuest()
	e.GET("/super-admin/login", authHandler.SuperAdminLoginPage, guest)
	e.POST("/super-admin/login", authHandler.SuperAdminLogin, guest)
	e.GET("/admin/login", authHandler.AdminLoginPage, guest)
	e.POST("/admin/login", authHandler.AdminLogin, guest)
	e.GET("/client/login", authHandler.ClientLoginPage, guest)
	e.POST("/client/login", authHandler.ClientLogin, guest)
	e.GET("/user/login", authHandler.UserLoginPage, guest)
	e.POST("/user/login", authHandler.UserLogin, guest)
	e.POST("/user/login/firebase", authHandler.FirebaseLogin, guest)

	e.GET("/client/register", authHandler.ClientRegisterPage, guest)
	e.POST("/client/register", authHandler.ClientRegister, guest)
	e.GET("/user/register", authHandler.UserRegisterPage, guest)
	e.POST("/user/register", authHandler.UserRegister, guest)
	e.POST("/user/register/firebase", authHandler.FirebaseRegister, guest)

	// --- Mobile OTP registration flow (guest) ---
	reg := e.Group("/mobile/user/register", guest)
	reg.GET("", registerHandler.Page)
	reg.POST("/step1", registerHandler.Step1)
	reg.POST("/step1/verify", registerHandler.Step1Verify)
	reg.POST("/step2", registerHandler.Step2)
	reg.POST("/step2/verify", registerHandler.Step2Verify)
	reg.POST("/step3", registerHandler.Step3)
	reg.POST("/resend-email-otp", registerHandler.ResendEmailOTP)
	reg.POST("/resend-mobile-otp", registerHandler.ResendMobileOTP)

	// --- Super admin console ---
	sa := e.Group("/super-admin", guard.RequireRoles(domain.RoleSuperAdmin))
	sa.GET("/overview", superAdminHandler.Overview)
	sa.GET("/admins", superAdminHandler.Admins)
	sa.POST("/admins", superAdminHandler.CreateAdmin)
	sa.PUT("/admins/:id", superAdminHandler.UpdateAdmin)
	sa.DELETE("/admins/:id", superAdminHandler.DeleteAdmin)
	sa.GET("/pending-approvals", superAdminHandler.PendingApprovals)
	sa.POST("/pending-approvals/:type/:id/approve", superAdminHandler.ApproveLogin)
	sa.POST("/pending-approvals/:type/:id/reject", superAdminHandler.RejectLogin)
	sa.POST("/logout", authHandler.Logout)

	// --- Admin console (super admins may enter) ---
	ad := e.Group("/admin", guard.RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin))
	ad.GET("/overview", adminHandler.Overview)
	ad.GET("/clients", adminHandler.Clients)
	ad.POST("/clients", adminHandler.CreateClient)
	ad.PUT("/clients/:id", adminHandler.UpdateClient)
	ad.DELETE("/clients/:id", adminHandler.DeleteClient)
	ad.POST("/clients/:id/login-as", adminHandler.LoginAsClient)
	ad.GET("/users", adminHandler.Users)
	ad.POST("/logout", authHandler.Logout)

	// --- Client portal (admins and super admins may enter) ---
	cl := e.Group("/client", guard.RequireRoles(domain.RoleClient, domain.RoleAdmin, domain.RoleSuperAdmin))
	cl.GET("/overview", clientHandler.Overview)
	cl.GET("/users", clientHandler.Users)
	cl.POST("/users", clientHandler.CreateUser)
	cl.PUT("/users/:id", clientHandler.UpdateUser)
	cl.DELETE("/users/:id", clientHandler.DeleteUser)
	cl.GET("/services", clientHandler.Services)
	cl.GET("/payments", clientHandler.Payments)
	cl.GET("/notifications", clientHandler.Notifications)
	cl.POST("/logout", authHandler.Logout)

	// --- Mobile user surface ---
	mu := e.Group("/mobile/user", guard.RequireRoles(domain.RoleUser))
	mu.GET("/dashboard", mobileHandler.Dashboard)
	mu.GET("/profile", mobileHandler.ProfilePage)
	mu.PUT("/profile", mobileHandler.UpdateProfile)
	mu.GET("/chat", chatHandler.List)
	mu.POST("/chat", chatHandler.Create)
	mu.GET("/chat/:id", chatHandler.Transcript)
	mu.POST("/chat/:id/messages", chatHandler.Send)
	mu.DELETE("/chat/:id", chatHandler.Delete)
	mu.GET("/voice", voiceHandler.Page)
	mu.POST("/voice/sessions", voiceHandler.Start)
	mu.POST("/voice/sessions/:id/record", voiceHandler.Record)
	mu.POST("/voice/sessions/:id/process", voiceHandler.Process)
	mu.POST("/voice/sessions/:id/stop", voiceHandler.Stop)
	mu.PUT("/voice/sessions/:id/continuous", voiceHandler.SetContinuous)
	mu.POST("/logout", authHandler.Logout)

	// Legacy catch-all dashboard; carries no role prefix, so the guard
	// always bounces it to the user login.
	e.GET("/dashboard", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, domain.RoleUser.LoginPath())
	})

	// --- Uploads (credential role follows the initiating page) ---
	e.POST("/upload/presigned-url", uploadHandler.Presign)
	e.POST("/upload/direct", uploadHandler.Direct)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(backend, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
