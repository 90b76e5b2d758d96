package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/postbridge/configs"
	"github.com/maheshrc27/postbridge/internal/logging"
	"github.com/maheshrc27/postbridge/pkg/utils"
)

// UserIDKey is the fiber.Ctx local holding the authenticated user id (int64).
const UserIDKey = "user_id"

type ApiKeyResolver interface {
	GetUserID(ctx context.Context, apiKey string) (int64, error)
}

type AuthMiddleware struct {
	s   ApiKeyResolver
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, keys ApiKeyResolver) *AuthMiddleware {
	return &AuthMiddleware{s: keys, cfg: cfg}
}

// AuthMiddleware accepts a bearer token, the session cookie or an api_key
// query parameter, in that order.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := bearerToken(c.Get(fiber.HeaderAuthorization))
		cookie := c.Cookies(m.cfg.CookieName)
		apiKey := c.Query("api_key")

		switch {
		case bearer != "":
			userID, err := utils.ValidateToken(m.cfg.JWTSecret, bearer)
			if err != nil {
				slog.Info("token validation failed", "error", err.Error())
				return unauthorized(c, "Invalid or expired token")
			}
			c.Locals(UserIDKey, userID)

		case cookie != "":
			userID, err := utils.ValidateToken(m.cfg.JWTSecret, cookie)
			if err != nil {
				c.Cookie(&fiber.Cookie{
					Name:   m.cfg.CookieName,
					Value:  "",
					Path:   "/",
					MaxAge: -1, // Delete cookie
				})
				slog.Info("token validation failed", "error", err.Error())
				return unauthorized(c, "Invalid or expired token")
			}
			c.Locals(UserIDKey, userID)

		case apiKey != "":
			userID, err := m.s.GetUserID(c.Context(), apiKey)
			if err != nil {
				slog.Info("api key rejected", "api_key", logging.MaskToken(apiKey))
				return unauthorized(c, "Invalid API key")
			}
			c.Locals(UserIDKey, userID)

		default:
			return unauthorized(c, "Missing Keys or cookies")
		}

		return c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}
