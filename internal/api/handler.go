package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/middleware"
	"github.com/guttosm/quotepulse/internal/refresh"
	"github.com/guttosm/quotepulse/internal/service"
)

// Dashboards is the part of the refresh driver exposed over HTTP.
type Dashboards interface {
	Selection() dto.Selection
	Select(ctx context.Context, sel dto.Selection) (dto.Dashboard, error)
	Latest() (dto.Dashboard, bool)
	Subscribe() (<-chan dto.Dashboard, func())
}

var _ Dashboards = (*refresh.Driver)(nil)

// Handler provides HTTP handlers for quote snapshots, charts and the live
// dashboard selection.
//
// Responsibilities:
//   - Validate query parameters and request bodies
//   - Call the quote aggregator or the refresh driver
//   - Map aggregator errors to HTTP status codes
//   - Return response DTOs as JSON
type Handler struct {
	agg        service.QuoteAggregator
	dashboards Dashboards
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - agg: aggregator used by the on-demand snapshot and chart endpoints.
//   - dashboards: refresh driver backing the selection, dashboard and stream endpoints.
func NewHandler(agg service.QuoteAggregator, dashboards Dashboards) *Handler {
	return &Handler{agg: agg, dashboards: dashboards}
}

// GetSnapshot handles GET /api/v1/snapshot.
//
// GetSnapshot godoc
// @Summary      Get price snapshot
// @Description  Latest price, change versus the previous bar, direction and latest 20/50-bar moving averages
// @Tags         quotes
// @Produce      json
// @Param        symbol  query     string  true   "Ticker symbol" example(AAPL)
// @Param        period  query     string  false  "Look-back period" Enums(1d,5d,1mo,3mo,6mo,1y) default(1d)
// @Success      200     {object}  dto.SnapshotResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse     "Invalid symbol"
// @Failure      422     {object}  dto.DegradedResponse  "Insufficient history or change unavailable; body carries the latest bar"
// @Failure      502     {object}  dto.ErrorResponse     "Quote source unavailable"
// @Failure      504     {object}  dto.ErrorResponse     "Quote source timeout"
// @Router       /api/v1/snapshot [get]
func (h *Handler) GetSnapshot(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}

	snap, err := h.agg.GetSnapshot(c.Request.Context(), key.Symbol, key.Period)
	if err != nil {
		writeAggregatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSnapshotResponse(snap))
}

// GetChart handles GET /api/v1/chart.
//
// GetChart godoc
// @Summary      Get chart series
// @Description  Candlesticks, optional MA20/MA50 overlays, volume bars and the most recent bars as a table
// @Tags         quotes
// @Produce      json
// @Param        symbol  query     string   true   "Ticker symbol" example(AAPL)
// @Param        period  query     string   false  "Look-back period" Enums(1d,5d,1mo,3mo,6mo,1y) default(1d)
// @Param        ma      query     boolean  false  "Include moving-average overlays" default(true)
// @Param        tail    query     integer  false  "Rows in the recent-bars table" minimum(0) maximum(500) default(15)
// @Success      200     {object}  dto.ChartResponse     "Success"
// @Failure      400     {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse     "Invalid symbol"
// @Failure      422     {object}  dto.DegradedResponse  "Insufficient history or change unavailable; body carries the latest bar"
// @Failure      502     {object}  dto.ErrorResponse     "Quote source unavailable"
// @Failure      504     {object}  dto.ErrorResponse     "Quote source timeout"
// @Router       /api/v1/chart [get]
func (h *Handler) GetChart(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}

	showMA, err := strconv.ParseBool(c.DefaultQuery("ma", "true"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid ma flag, expected true or false", err)
		return
	}
	tail, err := strconv.Atoi(c.DefaultQuery("tail", strconv.Itoa(dto.DefaultTailSize)))
	if err != nil || tail < 0 || tail > dto.MaxTailSize {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid tail, expected 0..500", err)
		return
	}

	snap, err := h.agg.GetSnapshot(c.Request.Context(), key.Symbol, key.Period)
	if err != nil {
		writeAggregatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewChartResponse(snap, showMA, tail))
}

// GetSelection handles GET /api/v1/selection.
//
// GetSelection godoc
// @Summary      Get live selection
// @Description  Symbol, period and overlay toggle the refresh driver is tracking
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.Selection
// @Router       /api/v1/selection [get]
func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboards.Selection())
}

// PutSelection handles PUT /api/v1/selection.
//
// PutSelection godoc
// @Summary      Change live selection
// @Description  Replaces the tracked symbol/period/overlay toggle and refreshes immediately
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        selection  body      dto.Selection  true  "New selection"
// @Success      200        {object}  dto.Dashboard
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/v1/selection [put]
func (h *Handler) PutSelection(c *gin.Context) {
	var sel dto.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid selection body", err)
		return
	}
	period, err := models.ParsePeriod(string(sel.Period))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid period", err)
		return
	}
	sel.Period = period

	dash, err := h.dashboards.Select(c.Request.Context(), sel)
	if err != nil {
		if errors.Is(err, refresh.ErrInvalidSelection) {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid selection", err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to apply selection", err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

// GetDashboard handles GET /api/v1/dashboard.
//
// GetDashboard godoc
// @Summary      Get latest dashboard
// @Description  Result of the most recent refresh: metrics and chart, or an error state
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.Dashboard
// @Failure      503  {object}  dto.ErrorResponse  "No refresh has completed yet"
// @Router       /api/v1/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	dash, ok := h.dashboards.Latest()
	if !ok {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "no refresh has completed yet", nil)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// parseKey reads symbol (required) and period (default 1d). On failure it
// writes a 400 and returns false.
func parseKey(c *gin.Context) (models.RequestKey, bool) {
	symbol := models.NormalizeSymbol(c.Query("symbol"))
	if symbol == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "symbol is required", nil)
		return models.RequestKey{}, false
	}
	period, err := models.ParsePeriod(c.DefaultQuery("period", string(models.Period1D)))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid period", err)
		return models.RequestKey{}, false
	}
	return models.RequestKey{Symbol: symbol, Period: period}, true
}
