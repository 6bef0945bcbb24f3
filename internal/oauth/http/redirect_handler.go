// Package http provides the OAuth authorization redirect used by the app's sign-in flow.
package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// droppedParam is rejected by the Google authorization endpoint when forwarded.
const droppedParam = "origin"

// RedirectHandler forwards authorization requests to the identity provider.
type RedirectHandler struct {
	authorizeURL string
	logger       *slog.Logger
}

// NewRedirectHandler creates a handler redirecting to authorizeURL.
func NewRedirectHandler(authorizeURL string, logger *slog.Logger) *RedirectHandler {
	return &RedirectHandler{
		authorizeURL: authorizeURL,
		logger:       logger,
	}
}

// AuthorizeHandler redirects to the authorization endpoint.
// GET /auth - Returns 302 Found with every query parameter except origin kept as sent.
func (h *RedirectHandler) AuthorizeHandler(c *gin.Context) {
	location := h.authorizeURL
	if query := StripQueryParam(c.Request.URL.RawQuery, droppedParam); query != "" {
		separator := "?"
		if strings.Contains(location, "?") {
			separator = "&"
		}
		location += separator + query
	}

	h.logger.Debug("redirecting to authorization endpoint")
	c.Redirect(http.StatusFound, location)
}

// StripQueryParam removes every occurrence of name from a raw query string while
// leaving the remaining pairs byte-for-byte unchanged and in order.
func StripQueryParam(rawQuery, name string) string {
	if rawQuery == "" {
		return ""
	}

	pairs := strings.Split(rawQuery, "&")
	kept := pairs[:0]
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if key == name {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}
