package middleware

import (
	"net/http"
	"time"

	"eastside-storefront/cart"
	"eastside-storefront/logger"
	"eastside-storefront/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "eastside_session"
	cartKey       = "cart"
	sessionIDKey  = "session_id"
)

type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

// CartSession resolves the browser session from its signed cookie, minting a new one
// when the cookie is missing or invalid, and attaches the session's cart.
func CartSession(registry *cart.Registry, cfg SessionConfig, logg *logger.Logger) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	return func(c *gin.Context) {
		sessionID := ""
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if claims, err := utils.ValidateSessionToken(cfg.Secret, raw); err == nil {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = utils.NewSessionID()
			token, err := utils.GenerateSessionToken(cfg.Secret, sessionID, cfg.TTL)
			if err != nil {
				logg.Error(c.Request.Context(), "session.token_failed", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to start session"})
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		}

		ctx := logg.WithSessionID(c.Request.Context(), sessionID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(sessionIDKey, sessionID)
		c.Set(cartKey, registry.Get(ctx, sessionID))
		c.Next()
	}
}

// MustCart returns the session cart. It panics when CartSession did not run for this
// route, which is a wiring bug rather than a request error.
func MustCart(c *gin.Context) *cart.Store {
	v, ok := c.Get(cartKey)
	if !ok {
		panic("middleware: cart requested outside CartSession")
	}
	store, ok := v.(*cart.Store)
	if !ok || store == nil {
		panic("middleware: cart context value has wrong type")
	}
	return store
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
