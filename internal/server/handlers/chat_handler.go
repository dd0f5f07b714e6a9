package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/eggmonitor/internal/service/chat"
)

type chatRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask sends a question about the filtered data to the assistant.
func (h *Handler) Ask(c *gin.Context) {
	if !h.chat.Enabled() {
		h.fail(c, http.StatusServiceUnavailable, "El asistente no está configurado.", nil)
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Pregunta requerida.", err)
		return
	}
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}

	session := c.GetString(sessionKey)
	answer, err := h.chat.Ask(c.Request.Context(), session, req.Question, h.dashboard.Query(criteria), criteria)
	switch {
	case errors.Is(err, chat.ErrEmptyQuestion):
		h.fail(c, http.StatusBadRequest, "Pregunta requerida.", err)
		return
	case err != nil:
		h.fail(c, http.StatusBadGateway, "Error de comunicación con el experto.", err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// ChatHistory returns the session's conversation.
func (h *Handler) ChatHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.History(c.GetString(sessionKey)))
}

// ClearChat forgets the session's conversation.
func (h *Handler) ClearChat(c *gin.Context) {
	h.chat.Clear(c.GetString(sessionKey))
	c.Status(http.StatusNoContent)
}
