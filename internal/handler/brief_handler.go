package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/apurba-aicerts/Autonomous-Content-Agent-System/internal/model"
	"github.com/gin-gonic/gin"
)

type BriefStore interface {
	GetByID(id int64) (*model.Brief, error)
	ListBriefs(limit, offset int) ([]model.Brief, error)
	GetBriefTotal() (int, error)
}

type BriefHandler struct {
	repository BriefStore
}

func NewBriefHandler(repository BriefStore) *BriefHandler {
	return &BriefHandler{repository: repository}
}

func toBriefResponse(b *model.Brief) BriefResponse {
	return BriefResponse{
		ID:               b.ID,
		RunID:            b.RunID,
		Topic:            b.Topic,
		SourceType:       b.SourceType,
		Audience:         b.Audience,
		JobToBeDone:      b.JobToBeDone,
		Angle:            b.Angle,
		Promise:          b.Promise,
		CTA:              b.CTA,
		KeyTalkingPoints: b.KeyTalkingPoints,
		ModelUsed:        b.ModelUsed,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}

func (h *BriefHandler) GetBrief(c *gin.Context) {
	id := c.Param("id")

	briefID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid brief id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brief id"})
		return
	}

	brief, err := h.repository.GetByID(briefID)
	if err != nil {
		slog.Error("error fetching brief", "error", err, "brief_id", briefID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if brief == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brief not found"})
		return
	}

	c.JSON(http.StatusOK, toBriefResponse(brief))
}

func (h *BriefHandler) GetBriefs(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	total, err := h.repository.GetBriefTotal()
	if err != nil {
		slog.Error("error fetching brief total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	briefs, err := h.repository.ListBriefs(limit, offset)
	if err != nil {
		slog.Error("error fetching briefs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var briefRes []BriefResponse
	for i := range briefs {
		briefRes = append(briefRes, toBriefResponse(&briefs[i]))
	}

	c.JSON(http.StatusOK, BriefsResponse{
		Briefs: briefRes,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
