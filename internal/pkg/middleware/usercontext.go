package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/entitlements"
	"github.com/brewlogic/BrewLogic/internal/pkg/session"
	"github.com/brewlogic/BrewLogic/internal/pkg/usercontext"
)

// UserLoader resolves the session's user id to a row.
type UserLoader interface {
	GetByID(id uint) (*models.User, error)
}

// UserContextMiddleware sets up the complete user context for every request.
// The user row is reloaded each time so plan changes made by an admin take
// effect without a new login.
func UserContextMiddleware(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		anonymous := usercontext.UserContext{}

		userID, _, ok := session.Identity(c)
		if !ok {
			usercontext.Set(c, anonymous)
			return c.Next()
		}

		user, err := users.GetByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Account deleted while logged in.
				_ = session.Logout(c)
			} else {
				log.Errorf("[Auth] could not load user %d: %v", userID, err)
			}
			usercontext.Set(c, anonymous)
			return c.Next()
		}

		usercontext.Set(c, usercontext.UserContext{
			UserID:     user.ID,
			Username:   user.Username,
			IsLoggedIn: true,
			IsAdmin:    user.IsAdmin(),
			Plan:       user.PlanName(),
			CanBrew:    entitlements.CanBrew(user, time.Now()),
			User:       user,
		})
		return c.Next()
	}
}
