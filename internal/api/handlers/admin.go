package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/contrarian-dfs/internal/ingest"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
)

type AdminHandler struct {
	table TableAdmin
}

func NewAdminHandler(table TableAdmin) *AdminHandler {
	return &AdminHandler{table: table}
}

type ImportRequest struct {
	Players []ingest.RawPlayer `json:"players" binding:"required"`
	Replace bool               `json:"replace"`
}

// ImportPlayers upserts a batch of loosely typed rows.
func (h *AdminHandler) ImportPlayers(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.table.Import(c.Request.Context(), req.Players, req.Replace)
	if errors.Is(err, utils.ErrInvalidInput) {
		utils.SendError(c, http.StatusBadRequest, utils.NewAppError(utils.ErrCodeInvalidRecord, "No usable player rows", err.Error()))
		return
	}
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to import players")
		return
	}

	utils.SendSuccess(c, result)
}

func (h *AdminHandler) ReloadPlayers(c *gin.Context) {
	snap, err := h.table.Reload(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to reload player table")
		return
	}

	utils.SendSuccess(c, gin.H{
		"version": snap.Version,
		"rows":    len(snap.Players),
	})
}
