package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/contrarian-dfs/internal/insights"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
)

type TournamentHandler struct {
	table PlayerTable
}

func NewTournamentHandler(table PlayerTable) *TournamentHandler {
	return &TournamentHandler{table: table}
}

// GetRecommendations returns field-size specific picks; field defaults to large.
func (h *TournamentHandler) GetRecommendations(c *gin.Context) {
	field, err := insights.ParseFieldSize(c.DefaultQuery("field", string(insights.FieldLarge)))
	if err != nil {
		utils.SendValidationError(c, "Invalid field size", err.Error())
		return
	}

	snap, err := h.table.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load player table")
		return
	}

	rec := insights.RecommendForField(snap.Players, field)
	utils.SendSuccessWithMeta(c, rec, &utils.Meta{Total: len(rec.Players), DataVersion: snap.Version})
}
