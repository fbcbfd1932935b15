package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/contrarian-dfs/internal/assistant"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
)

type AssistantHandler struct {
	table PlayerTable
}

func NewAssistantHandler(table PlayerTable) *AssistantHandler {
	return &AssistantHandler{table: table}
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

func (h *AssistantHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	snap, err := h.table.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load player table")
		return
	}

	utils.SendSuccess(c, assistant.Ask(req.Question, snap.Players))
}
