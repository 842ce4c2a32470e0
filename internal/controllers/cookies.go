package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prysmhq/prysm_backend/internal/auth"
	"github.com/prysmhq/prysm_backend/internal/middleware"
)

// cookieFor builds an auth cookie whose MaxAge and Expires come from the
// signed token's own expiry, so cookie lifetime and token lifetime cannot
// drift apart. In production cookies are Secure with SameSite=None for
// cross-site frontends; elsewhere Lax keeps local development working.
func cookieFor(name string, tok auth.TokenOutput, production bool) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    tok.Raw,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
		MaxAge:   int(time.Until(tok.ExpiresAt).Seconds()),
		Expires:  tok.ExpiresAt,
	}
}

func setSessionCookies(c *gin.Context, session *auth.Session, production bool) {
	http.SetCookie(c.Writer, cookieFor(middleware.AccessCookie, session.Access, production))
	http.SetCookie(c.Writer, cookieFor(middleware.RefreshCookie, session.Refresh, production))
}

func clearSessionCookies(c *gin.Context, production bool) {
	for _, name := range []string{middleware.AccessCookie, middleware.RefreshCookie} {
		expired := cookieFor(name, auth.TokenOutput{Raw: "", ExpiresAt: time.Unix(0, 0)}, production)
		expired.MaxAge = -1
		http.SetCookie(c.Writer, expired)
	}
}
