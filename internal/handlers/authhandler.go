package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-portal/internal/auth"
)

type AuthHandler struct {
	Tokens       *auth.TokenManager
	CookieSecure bool
	Log          *logrus.Logger
}

func NewAuthHandler(tm *auth.TokenManager, cookieSecure bool, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{Tokens: tm, CookieSecure: cookieSecure, Log: log}
}

// IssueToken is the POST /jwt endpoint. The JSON body becomes the token's
// claims; an empty body signs an empty claim set.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	claims := auth.Claims{}
	if err := c.ShouldBindJSON(&claims); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, err := h.Tokens.Generate(claims)
	if err != nil {
		h.Log.WithError(err).Error("Failed to sign token")
		internalError(c)
		return
	}

	auth.SetTokenCookie(c, token, int(h.Tokens.TTL().Seconds()), h.CookieSecure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout is the POST /logout endpoint
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearTokenCookie(c, h.CookieSecure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
