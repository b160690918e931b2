package handlers

import (
	"net/http"
	"strconv"

	"it-inventory/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListChanges — история изменений с фильтрами по активу, действию,
// полю и диапазону дат.
func (h *Handlers) ListChanges(c *gin.Context) {
	filter := store.ChangeFilter{
		Action:    c.Query("action"),
		Field:     c.Query("field"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if raw := c.Query("asset_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			assetID := uint(id)
			filter.AssetID = &assetID
		}
	}

	changes, err := h.changes.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("failed to list changes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}

	out := make([]map[string]any, 0, len(changes))
	for i := range changes {
		out = append(out, changes[i].ToResponse())
	}
	c.JSON(http.StatusOK, out)
}

// ListMoves — история перемещений: смены комнаты и отдела.
func (h *Handlers) ListMoves(c *gin.Context) {
	moves, err := h.changes.Moves(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list moves", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}
	c.JSON(http.StatusOK, moves)
}
