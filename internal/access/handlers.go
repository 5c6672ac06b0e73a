package access

import (
	"context"
	"strings"

	"devintel-backend/internal/middleware"
	"devintel-backend/internal/models"
	"devintel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Handlers implements the beta-access gate: visitors enter a name (and an
// optional organization) before the dashboard is served.
type Handlers struct {
	DB     *gorm.DB
	Rdb    *redis.Client
	Config middleware.SessionConfig
}

// EnterRequest is the gate form body.
type EnterRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// Enter POST /api/v1/access/enter — record the visit and open a session.
func (h *Handlers) Enter(c *fiber.Ctx) error {
	var req EnterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Please enter your name", fiber.StatusBadRequest, nil)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return response.Error(c, "Please enter your name", fiber.StatusBadRequest, nil)
	}

	// A failed access-log insert is reported but does not block entry.
	if err := h.logAccess(c.Context(), req); err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("access logging failed")
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		Name:         req.Name,
		Organization: strings.TrimSpace(req.Organization),
	})

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Access granted", fiber.Map{
		"user": fiber.Map{
			"name":         req.Name,
			"organization": strings.TrimSpace(req.Organization),
		},
	}, nil)
}

// Me GET /api/v1/access/me — return the current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Exit POST /api/v1/access/exit — end the session and clear the cookie.
func (h *Handlers) Exit(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" && h.Rdb != nil {
		if err := h.Rdb.Del(c.Context(), middleware.SessionRedisPrefix+sessionID).Err(); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("session delete failed")
		}
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Session ended", nil, nil)
}

func (h *Handlers) logAccess(ctx context.Context, req EnterRequest) error {
	if h.DB == nil {
		return gorm.ErrInvalidDB
	}
	entry := models.AccessLog{
		UserName:     req.Name,
		Organization: strings.TrimSpace(req.Organization),
	}
	return h.DB.WithContext(ctx).Create(&entry).Error
}
