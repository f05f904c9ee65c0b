package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/adapters/http/middleware"
	"quartermaster/internal/config"
	"quartermaster/internal/core/services"
	"quartermaster/internal/pkg/response"
	"quartermaster/internal/pkg/token"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService  *services.AuthService
	auditService *services.AuditService
	cfg          *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, auditService *services.AuditService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		auditService: auditService,
		cfg:          cfg,
	}
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, signed string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthTokenCookie,
		Value:    signed,
		Path:     "/",
		Domain:   h.cfg.Cookie.Domain,
		Expires:  time.Now().Add(token.Validity),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.setAuthCookie(c, result.Token)

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    result.User.ID,
		Action:     services.AuditActionLogin,
		RecordKind: "user",
		RecordID:   result.User.ID,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Success(c, "Login successful", result)
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Signup(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	h.setAuthCookie(c, result.Token)

	h.auditService.Record(c.Context(), services.Entry{
		ActorID:    result.User.ID,
		Action:     services.AuditActionSignup,
		RecordKind: "user",
		RecordID:   result.User.ID,
		NewValues:  result.User,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	})

	return response.Created(c, "Account created successfully", result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	user, err := h.authService.GetUserByID(c.Context(), actor.UserID)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "", user.ToResponse())
}

// Logout handles POST /api/auth/logout by expiring the session cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthTokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.cfg.Cookie.Domain,
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return response.Success(c, "Logged out successfully", nil)
}
