package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
	internalrepo "github.com/MarkCoder7/pktvisor/internal/repository"
	"github.com/MarkCoder7/pktvisor/internal/service/ratelimit"
	"github.com/MarkCoder7/pktvisor/internal/usecase"
	xhttp "github.com/MarkCoder7/pktvisor/pkg/http"
	xlogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

// selection floods from continuous brushing get throttled per session;
// symbol changes are rare and never dropped.
const (
	selectionBurst  = 100.0
	selectionPerSec = 50.0
)

// DashboardEchoHandler hosts the dashboard shell: a WebSocket session per
// client, each with its own series store and orchestrator, plus a few
// stateless REST conveniences.
type DashboardEchoHandler struct {
	logger   *xlogger.Logger
	source   drepo.SeriesSource
	metrics  drepo.Metrics
	extra    []drepo.Sink // optional fan-out sinks shared by all sessions
	limiter  *ratelimit.Limiter
	upgrader websocket.Upgrader

	universe []string
	sym1     string
	sym2     string
}

// NewDashboardEchoHandler creates the handler. extra sinks (e.g. Kafka
// fan-out) may be nil.
func NewDashboardEchoHandler(
	logger *xlogger.Logger,
	source drepo.SeriesSource,
	metrics drepo.Metrics,
	universe []string,
	sym1, sym2 string,
	extra ...drepo.Sink,
) *DashboardEchoHandler {
	return &DashboardEchoHandler{
		logger:  logger,
		source:  source,
		metrics: metrics,
		extra:   extra,
		limiter: ratelimit.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		universe: universe,
		sym1:     sym1,
		sym2:     sym2,
	}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/symbols", h.Symbols)
	g.GET("/series/:symbol", h.Series)
	e.GET("/ws", h.WS)
}

type symbolsResponse struct {
	Symbols  []string `json:"symbols"`
	Default1 string   `json:"default1"`
	Default2 string   `json:"default2"`
}

// Symbols returns the selectable universe and the starting pair.
func (h *DashboardEchoHandler) Symbols(c echo.Context) error {
	return xhttp.SuccessResponse(c, symbolsResponse{
		Symbols:  h.universe,
		Default1: h.sym1,
		Default2: h.sym2,
	})
}

// Series returns the raw series for one symbol, optionally clipped to a
// from/to range.
func (h *DashboardEchoHandler) Series(c echo.Context) error {
	symbol := c.Param("symbol")
	if !h.inUniverse(symbol) {
		return xhttp.NotFoundResponse(c, fmt.Sprintf("unknown symbol %q", symbol))
	}

	points, err := h.source.Load(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, models.ErrMissingSeries) {
			return xhttp.NotFoundResponse(c, fmt.Sprintf("no data for %q", symbol))
		}
		h.logger.Error("series load error", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	from := xhttp.ParseTimeDefault(c.QueryParam("from"), time.Time{})
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), time.Time{})
	if !from.IsZero() || !to.IsZero() {
		clipped := make([]models.Point, 0, len(points))
		for _, p := range points {
			if !from.IsZero() && p.Date.Before(from) {
				continue
			}
			if !to.IsZero() && p.Date.After(to) {
				continue
			}
			clipped = append(clipped, p)
		}
		points = clipped
	}

	return xhttp.SuccessResponse(c, models.TimeSeries{Symbol: symbol, Points: points})
}

// clientMessage is a decoded inbound WebSocket frame.
type clientMessage struct {
	Type   string `json:"type" validate:"required,oneof=symbol selection"`
	Slot   int    `json:"slot" validate:"omitempty,oneof=0 1 2"`
	Symbol string `json:"symbol"`
	Rows   []int  `json:"rows"`
}

// WS upgrades the connection and runs one dashboard session over it. The
// session owns its series store and orchestrator; nothing is shared with
// other sessions except the immutable backing source.
func (h *DashboardEchoHandler) WS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("ws upgrade: %w", err)
	}
	defer conn.Close()

	ctx := c.Request().Context()
	sessionKey := conn.RemoteAddr().String()
	h.logger.Info("dashboard session opened", xlogger.String("client", sessionKey))

	store := usecase.NewSeriesStore(h.source, h.metrics)
	builder := usecase.NewPairDatasetBuilder(store, h.metrics)
	sinks := append([]drepo.Sink{newWSSink(conn), internalrepo.NewLogSink(h.logger)}, h.extra...)
	orch := usecase.NewUpdateOrchestrator(h.universe, h.sym1, h.sym2, builder, h.metrics, h.logger, sinks...)

	events := make(chan models.Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := orch.Run(ctx, events); err != nil && !errors.Is(err, ctx.Err()) {
			h.logger.Warn("session loop error", xlogger.Error(err))
		}
	}()

	h.readLoop(c, conn, sessionKey, events)
	close(events)
	<-done
	h.limiter.Forget(sessionKey)
	h.logger.Info("dashboard session closed", xlogger.String("client", sessionKey))
	return nil
}

func (h *DashboardEchoHandler) readLoop(c echo.Context, conn *websocket.Conn, sessionKey string, events chan<- models.Event) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("ws read error", xlogger.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.metrics.RecordError("ws_decode")
			continue
		}
		if verr := xhttp.ValidateStruct(c.Request().Context(), &msg); verr != nil {
			h.metrics.RecordError("ws_validate")
			h.logger.Debug("invalid client message", xlogger.Any("errors", verr))
			continue
		}

		switch msg.Type {
		case "symbol":
			events <- models.SymbolChanged{Slot: models.Slot(msg.Slot), Symbol: msg.Symbol}
		case "selection":
			if !h.limiter.Allow(sessionKey, selectionBurst, selectionPerSec) {
				h.metrics.RecordError("ws_throttle")
				continue
			}
			events <- models.SelectionChanged{Rows: msg.Rows}
		}
	}
}

func (h *DashboardEchoHandler) inUniverse(symbol string) bool {
	for _, s := range h.universe {
		if s == symbol {
			return true
		}
	}
	return false
}

var _ xhttp.Handler = (*DashboardEchoHandler)(nil)
