package http

import (
	"net/http"
	"strings"

	"stock-sentiment-tracker/internal/sentiment/dto"
	"stock-sentiment-tracker/internal/sentiment/service"
	"stock-sentiment-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HistoryHandler handles HTTP requests for stored daily sentiment.
type HistoryHandler struct {
	historyService service.HistoryService
	logger         *logger.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService, logger *logger.Logger) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, logger: logger}
}

// RegisterRoutes registers the history routes to the Echo group.
func (h *HistoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:ticker", h.GetHistory)
}

// GetHistory godoc
// @Summary Get daily sentiment history
// @Description Get every stored daily record for a ticker, oldest first
// @Tags history
// @Produce  json
// @Param   ticker  path    string true    "Stock ticker"
// @Success 200 {array} dto.HistoryPoint
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /history/{ticker} [get]
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	ticker := strings.TrimSpace(c.Param("ticker"))
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Ticker is required"})
	}

	points, err := h.historyService.GetHistory(c.Request().Context(), ticker)
	if err != nil {
		h.logger.Error("Failed to get sentiment history", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get sentiment history"})
	}
	return c.JSON(http.StatusOK, points)
}
