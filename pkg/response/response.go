package response

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"newsagency.com/newsroom/pkg/apperror"
	"newsagency.com/newsroom/pkg/logger"
)

// Context keys set by the auth middleware.
const (
	RedactorIDKey = "redactor_id"
	SessionIDKey  = "session_id"
)

const (
	SessionCookieName = "sessionid"
	LoginPath         = "/accounts/login/"
)

// SessionToken returns the bearer token of an API client, or the session
// cookie of a browser.
func SessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
	}
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}

// GetRedactorID retrieves the authenticated redactor ID from the context
func GetRedactorID(c *gin.Context) (uint, error) {
	id, exists := c.Get(RedactorIDKey)
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	redactorID, ok := id.(uint)
	if !ok || redactorID == 0 {
		return 0, apperror.ErrUnauthorized
	}

	return redactorID, nil
}

// GetSessionID retrieves the session ID of the current login.
func GetSessionID(c *gin.Context) (string, error) {
	sid := c.GetString(SessionIDKey)
	if sid == "" {
		return "", apperror.ErrUnauthorized
	}
	return sid, nil
}

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.New(http.StatusBadRequest, "invalid "+name, apperror.ErrBadRequest)
	}
	return uint(id), nil
}

// Render writes data as HTML through the named template, or as JSON when the
// client asks for it.
func Render(c *gin.Context, code int, template string, data any) {
	c.Negotiate(code, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: template,
		Data:     data,
	})
}

// Redirect answers with 302 Found.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		logger.Log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("internal error")
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = http.StatusText(code)
	}

	Render(c, code, "error.html", gin.H{
		"status": code,
		"error":  message,
	})
	c.Abort()
}

// SafeRedirectTarget returns target when it is a path on this site, fallback
// otherwise.
func SafeRedirectTarget(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}

// RefererOr returns the request URI of the Referer header when it points back
// to this host.
func RefererOr(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != c.Request.Host {
		return fallback
	}
	return SafeRedirectTarget(u.RequestURI(), fallback)
}
