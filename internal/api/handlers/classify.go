package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/contrarian-dfs/internal/classifier"
	"github.com/jstittsworth/contrarian-dfs/internal/metrics"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
)

type ClassifyHandler struct {
	classifier *classifier.Classifier
	metrics    *metrics.Recorder
}

func NewClassifyHandler(c *classifier.Classifier, rec *metrics.Recorder) *ClassifyHandler {
	return &ClassifyHandler{
		classifier: c,
		metrics:    rec,
	}
}

type ClassifyRequest struct {
	Rank         *int     `json:"rank" binding:"required,gte=1"`
	OwnershipPct *float64 `json:"ownership_pct" binding:"required,gte=0,lte=100"`
}

type ClassifyResponse struct {
	PlayType        models.PlayType `json:"play_type"`
	ContrarianScore float64         `json:"contrarian_score"`
}

// Classify labels a single (rank, ownership) pair.
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	playType, score := h.classifier.Classify(*req.Rank, *req.OwnershipPct)
	h.metrics.RecordClassification(string(playType))

	utils.SendSuccess(c, ClassifyResponse{PlayType: playType, ContrarianScore: score})
}
