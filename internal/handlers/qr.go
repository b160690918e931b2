package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"it-inventory/internal/qr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) assetURL(id uint) string {
	return fmt.Sprintf("%s/assets/%d", h.cfg.FrontendBaseURL, id)
}

// BatchQR генерирует QR-коды для списка активов и возвращает их
// в base64; несуществующие ID пропускаются.
func (h *Handlers) BatchQR(c *gin.Context) {
	data, ok := bindJSON(c, "Неверный формат данных. Ожидается список ID.")
	if !ok {
		return
	}
	ids, ok := parseIDList(data["ids"])
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных. Ожидается список ID."})
		return
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Список ID активов пуст."})
		return
	}

	results := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		asset, err := h.assets.Get(c.Request.Context(), id)
		if err != nil {
			h.log.Warn("asset not found while generating QR codes", zap.Uint("id", id))
			continue
		}

		png, err := qr.Encode(h.assetURL(asset.ID))
		if err != nil {
			h.log.Error("failed to generate QR code", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сгенерировать QR-коды", "details": err.Error()})
			return
		}

		results = append(results, map[string]any{
			"id":               asset.ID,
			"inventory_number": asset.InventoryNumber,
			"full_name":        asset.FullName(),
			"qr_base64":        base64.StdEncoding.EncodeToString(png),
		})
	}

	c.JSON(http.StatusOK, results)
}

// AssetQR отдаёт QR-код одного актива как PNG.
func (h *Handlers) AssetQR(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	asset, err := h.assets.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Актив не найден"})
		return
	}

	png, err := qr.Encode(h.assetURL(asset.ID))
	if err != nil {
		h.log.Error("failed to generate QR code", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сгенерировать QR-код", "details": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
