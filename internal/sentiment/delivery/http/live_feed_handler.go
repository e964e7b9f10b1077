package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/dto"
	"stock-sentiment-tracker/internal/sentiment/service"
	"stock-sentiment-tracker/pkg/common"
	"stock-sentiment-tracker/pkg/logger"
	"stock-sentiment-tracker/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const defaultWriteTimeout = 10 * time.Second

// LiveFeedHandler upgrades subscribers to websocket and streams live sentiment snapshots.
type LiveFeedHandler struct {
	liveFeed     service.LiveFeed
	resolve      TargetResolver
	writeTimeout time.Duration
	pongWait     time.Duration
	upgrader     websocket.Upgrader
	logger       *logger.Logger
}

// NewLiveFeedHandler creates a new LiveFeedHandler. Browser origins are
// checked against allowedOrigins; "*" allows any origin.
func NewLiveFeedHandler(liveFeed service.LiveFeed, resolve TargetResolver, cfg config.LiveFeed, allowedOrigins []string, logger *logger.Logger) *LiveFeedHandler {
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &LiveFeedHandler{
		liveFeed:     liveFeed,
		resolve:      resolve,
		writeTimeout: writeTimeout,
		pongWait:     cfg.PongWait,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// RegisterRoutes registers the websocket routes to the Echo group.
func (h *LiveFeedHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/sentiment/:ticker", h.StreamSentiment)
}

// StreamSentiment godoc
// @Summary Live sentiment feed
// @Description Websocket. Pushes {averageSentiment, articleCount} on connect and then every live_feed.interval
// @Tags live
// @Param   ticker  path    string true    "Stock ticker"
// @Success 101 {object} entity.LiveSnapshot
// @Failure 503 {object} dto.ErrorResponse
// @Router /ws/sentiment/{ticker} [get]
func (h *LiveFeedHandler) StreamSentiment(c echo.Context) error {
	target := h.resolve(c.Param("ticker"))

	release, ok := h.liveFeed.Acquire()
	if !ok {
		h.logger.Warn("Live feed subscriber limit reached", logger.StringField("ticker", target.Ticker))
		return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Too many live subscribers"})
	}
	defer release()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error.
		h.logger.Warn("Websocket upgrade failed", logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		return nil
	}
	defer conn.Close()

	log := h.logger.With(
		logger.StringField("subscriber_id", uuid.NewString()),
		logger.StringField("ticker", target.Ticker),
	)
	log.Info("Live subscriber connected")

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Live feed panicked", logger.Field("panic", r))
			h.closeWithError(conn)
		}
	}()

	h.startReadPump(ctx, cancel, conn)
	h.startPinger(ctx, cancel, conn)

	err = h.liveFeed.Stream(ctx, target, func(snapshot entity.LiveSnapshot) error {
		if err := conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
			return err
		}
		return conn.WriteJSON(snapshot)
	})

	switch {
	case err == nil, ctx.Err() != nil, isPeerGone(err):
		log.Info("Live subscriber disconnected")
	default:
		log.Error("Live feed faulted", logger.ErrorField(err))
		h.closeWithError(conn)
	}
	return nil
}

// startReadPump consumes client frames so control frames are processed and a
// peer close is observed. Its exit cancels the stream.
func (h *LiveFeedHandler) startReadPump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	conn.SetReadLimit(1024)
	if h.pongWait > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.pongWait))
		})
	}
	utils.GoSafe(func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	})
}

func (h *LiveFeedHandler) startPinger(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	if h.pongWait <= 0 {
		return
	}
	pingPeriod := h.pongWait * 9 / 10
	utils.GoSafe(func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.writeTimeout)); err != nil {
					cancel()
					return
				}
			}
		}
	})
}

func (h *LiveFeedHandler) closeWithError(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, common.CloseReasonInternalError)
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.writeTimeout)); err != nil {
		h.logger.Debug("Failed to send close frame", logger.ErrorField(err))
	}
}

func isPeerGone(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	) || errors.Is(err, websocket.ErrCloseSent)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}
