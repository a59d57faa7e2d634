package http

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "portal_flash"

// FlashMessage is a one-shot user-facing notice carried across a redirect.
type FlashMessage struct {
	Category string
	Text     string
}

// setFlash stores a flash message in a short-lived cookie. The value is
// base64-encoded so free-text messages survive cookie encoding rules.
func setFlash(c echo.Context, category, text string) {
	value := base64.URLEncoding.EncodeToString([]byte(category + "|" + text))
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(c echo.Context) []FlashMessage {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// Clear on read.
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil
	}

	return []FlashMessage{{Category: parts[0], Text: parts[1]}}
}
