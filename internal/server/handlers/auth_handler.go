package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/eggmonitor/internal/service/auth"
)

const sessionKey = "session"

type loginRequest struct {
	Code string `json:"code" binding:"required"`
}

// Login exchanges the access code for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Código de acceso requerido.", err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Code)
	if errors.Is(err, auth.ErrInvalidCode) {
		h.fail(c, http.StatusUnauthorized, "Código de acceso incorrecto.", err)
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "No se pudo iniciar sesión.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout ends the session and forgets its chat history.
func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString(sessionKey)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.fail(c, http.StatusInternalServerError, "No se pudo cerrar la sesión.", err)
		return
	}
	h.chat.Clear(token)
	c.Status(http.StatusNoContent)
}

// RequireSession rejects requests without a valid bearer token.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.fail(c, http.StatusUnauthorized, "Sesión requerida.", nil)
			return
		}

		err := h.auth.Validate(c.Request.Context(), strings.TrimSpace(token))
		if errors.Is(err, auth.ErrInvalidSession) {
			h.fail(c, http.StatusUnauthorized, "Sesión inválida o expirada.", err)
			return
		}
		if err != nil {
			h.fail(c, http.StatusInternalServerError, "No se pudo validar la sesión.", err)
			return
		}

		c.Set(sessionKey, strings.TrimSpace(token))
		c.Next()
	}
}
