package http

import (
	"net/http"
	"strings"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/dto"
	"stock-sentiment-tracker/internal/sentiment/service"
	"stock-sentiment-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TargetResolver maps a ticker from the URL to the target used for news queries.
type TargetResolver func(ticker string) entity.Target

// SummaryHandler handles HTTP requests for narrative news summaries.
type SummaryHandler struct {
	summaryService service.SummaryService
	resolve        TargetResolver
	logger         *logger.Logger
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService service.SummaryService, resolve TargetResolver, logger *logger.Logger) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, resolve: resolve, logger: logger}
}

// RegisterRoutes registers the summary routes to the Echo group.
func (h *SummaryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:ticker", h.Summarize)
}

// Summarize godoc
// @Summary Summarize recent news
// @Description Generate a one-paragraph analyst summary of the latest headlines for a ticker
// @Tags summary
// @Produce  json
// @Param   ticker  path    string true    "Stock ticker"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /summarize/{ticker} [get]
func (h *SummaryHandler) Summarize(c echo.Context) error {
	ticker := strings.TrimSpace(c.Param("ticker"))
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Ticker is required"})
	}

	summary := h.summaryService.Summarize(c.Request().Context(), h.resolve(ticker))
	return c.JSON(http.StatusOK, dto.SummaryResponse{Summary: summary})
}
