package api

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"

	"CoinWatch/internal/domain/models"
	"CoinWatch/internal/handler/ws"
	"CoinWatch/internal/usecase"
	pkghttp "CoinWatch/pkg/http"
	"CoinWatch/pkg/logger"
)

//go:embed dashboard.html
var dashboardPage []byte

// Handler exposes the dashboard, the snapshot API and the websocket feed.
type Handler struct {
	board *usecase.SnapshotBoard
	hub   *ws.Hub
	log   *logger.Logger
}

func NewHandler(board *usecase.SnapshotBoard, hub *ws.Hub, log *logger.Logger) *Handler {
	return &Handler{board: board, hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Dashboard)
	e.GET("/healthz", h.Health)
	e.GET("/api/snapshots", h.ListSnapshots)
	e.GET("/api/snapshots/:symbol", h.GetSnapshot)
	e.GET("/api/alerts", h.ListAlerts)
	e.GET("/ws", h.Stream)
}

func (h *Handler) Dashboard(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, dashboardPage)
}

func (h *Handler) Health(c echo.Context) error {
	return pkghttp.SuccessResponse(c, map[string]string{"status": "up"})
}

// ListSnapshots returns the latest snapshot for every asset that
// completed its most recent poll, in registry order.
func (h *Handler) ListSnapshots(c echo.Context) error {
	return pkghttp.SuccessResponse(c, h.board.All())
}

func (h *Handler) GetSnapshot(c echo.Context) error {
	req := new(models.SnapshotRequest)
	if verr := pkghttp.ReadAndValidateRequest(c, req); verr != nil {
		return pkghttp.BadRequestResponse(c, verr)
	}

	snap, ok := h.board.Get(req.Symbol)
	if !ok {
		return pkghttp.AppErrorResponse(c, pkghttp.NotFoundErrorf("no snapshot for symbol %q", req.Symbol))
	}
	return pkghttp.SuccessResponse(c, snap)
}

func (h *Handler) ListAlerts(c echo.Context) error {
	req := new(models.AlertsRequest)
	if verr := pkghttp.ReadAndValidateRequest(c, req); verr != nil {
		return pkghttp.BadRequestResponse(c, verr)
	}
	return pkghttp.SuccessResponse(c, h.board.Alerts(req.Limit))
}

func (h *Handler) Stream(c echo.Context) error {
	if err := h.hub.Serve(c.Response(), c.Request()); err != nil {
		h.log.Warn("websocket upgrade failed", logger.Error(err))
		return err
	}
	return nil
}
