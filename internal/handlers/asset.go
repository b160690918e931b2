package handlers

import (
	"errors"
	"net/http"

	"it-inventory/internal/audit"
	"it-inventory/internal/models"
	"it-inventory/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// СПИСОК АКТИВОВ

func (h *Handlers) ListAssets(c *gin.Context) {
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort", "id")
	order := c.DefaultQuery("order", "asc")

	assets, err := h.assets.List(c.Request.Context(), search, sortBy, order)
	if err != nil {
		h.log.Error("failed to list assets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при загрузке данных"})
		return
	}

	out := make([]map[string]any, 0, len(assets))
	for i := range assets {
		out = append(out, assets[i].ToResponse())
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) GetAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	asset, err := h.assets.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Актив не найден"})
		return
	}
	c.JSON(http.StatusOK, asset.ToResponse())
}

// СОЗДАНИЕ

func (h *Handlers) CreateAsset(c *gin.Context) {
	data, ok := bindJSON(c, "Нет данных для создания актива")
	if !ok {
		return
	}

	var missing []string
	for _, f := range []string{"inventory_number", "type_id", "status_id"} {
		if isMissing(data[f]) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствуют обязательные поля", "missing": missing})
		return
	}

	if v, ok := data["purchase_date"]; ok {
		if _, valid := audit.CoerceDate(v); !valid {
			// неверная дата не блокирует создание, поле остаётся пустым
			h.log.Warn("invalid purchase_date format", zap.Any("value", v))
		}
	}

	asset := &models.Asset{}
	for _, f := range audit.Fields() {
		if v, ok := data[f.Name]; ok {
			f.Set(asset, v)
		}
	}

	if err := h.assets.Create(c.Request.Context(), asset); err != nil {
		if store.IsIntegrity(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Ошибка данных",
				"details": "Нарушены ограничения базы данных (например, дубликат инвентарного номера или ссылка на несуществующий объект).",
			})
			return
		}
		h.log.Error("failed to create asset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать актив", "details": err.Error()})
		return
	}

	created, err := h.assets.Get(c.Request.Context(), asset.ID)
	if err != nil {
		h.log.Error("failed to reload created asset", zap.Uint("id", asset.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать актив"})
		return
	}
	c.JSON(http.StatusCreated, created.ToResponse())
}

// ОБНОВЛЕНИЕ

func (h *Handlers) UpdateAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, ok := bindJSON(c, "Нет данных для обновления")
	if !ok {
		return
	}

	asset, err := h.assets.Update(c.Request.Context(), id, data)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Актив не найден"})
		case store.IsIntegrity(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Ошибка данных",
				"details": "Нарушены ограничения базы данных (например, обязательное поле не заполнено, или ссылка на несуществующий объект).",
			})
		default:
			h.log.Error("failed to update asset", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, asset.ToResponse())
}

// УДАЛЕНИЕ

func (h *Handlers) DeleteAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.assets.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Актив не найден"})
			return
		}
		h.log.Error("failed to delete asset", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить актив", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Актив успешно удален"})
}
