package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cubixparts/quotebuilder/internal/domain/models"
	"github.com/cubixparts/quotebuilder/internal/export"
	"github.com/cubixparts/quotebuilder/internal/quote"
	"github.com/cubixparts/quotebuilder/internal/repository/mongodb"
	"github.com/cubixparts/quotebuilder/pkg/numeric"
)

// QuoteHandler adapts the quote builder to the HTTP surface consumed by the
// browser front end.
type QuoteHandler struct {
	builder         *quote.Builder
	archive         mongodb.Repository
	suggestionLimit int
	exportColumns   []string
	logger          *zap.Logger
}

// NewQuoteHandler constructs the HTTP handler adapter. The archive may be
// nil, in which case exports are not recorded.
func NewQuoteHandler(builder *quote.Builder, archive mongodb.Repository, suggestionLimit int, exportColumns []string, logger *zap.Logger) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(exportColumns) == 0 {
		exportColumns = export.DefaultColumns
	}
	return &QuoteHandler{
		builder:         builder,
		archive:         archive,
		suggestionLimit: suggestionLimit,
		exportColumns:   exportColumns,
		logger:          logger,
	}
}

// Ready reports catalog readiness, 503 while the load is still in flight.
func (h *QuoteHandler) Ready(c *gin.Context) {
	if !h.builder.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Suggestions serves live prefix matches for the search input. An empty
// query always yields an empty list.
func (h *QuoteHandler) Suggestions(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	matches := h.builder.Suggest(c.Query("q"), h.suggestionLimit)
	if matches == nil {
		matches = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": matches})
}

type addItemRequest struct {
	PartNo string `json:"part_no" binding:"required"`
}

// AddItem appends a part to the working selection.
func (h *QuoteHandler) AddItem(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add-item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "part_no is required"})
		return
	}

	if err := h.builder.Add(req.PartNo); err != nil {
		if errors.Is(err, quote.ErrUnknownPart) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown part"})
			return
		}
		h.logger.Error("failed adding part", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add part"})
		return
	}

	h.respondQuote(c)
}

// RemoveItem drops a part from the selection, clearing its override with
// it. Removing an unselected part is a no-op.
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	h.builder.Remove(c.Param("partNo"))
	c.Status(http.StatusNoContent)
}

type setQuantityRequest struct {
	// Quantity is accepted as any JSON value; whatever arrives is pushed
	// through the parse-or-zero policy, so "abc" means zero, not an error.
	Quantity any `json:"quantity"`
}

// SetQuantity records a quantity edit for a selected row and returns the
// recomputed row.
func (h *QuoteHandler) SetQuantity(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quantity payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	row, err := h.builder.SetQuantity(c.Param("partNo"), rawString(req.Quantity))
	if err != nil {
		switch {
		case errors.Is(err, quote.ErrUnknownPart):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown part"})
		case errors.Is(err, quote.ErrNotSelected):
			c.JSON(http.StatusConflict, gin.H{"error": "part is not selected"})
		default:
			h.logger.Error("failed setting quantity", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set quantity"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"row": rowPayload(row)})
}

// GetQuote returns the projected rows. The empty flag is explicit so the
// front end renders its no-data state instead of an empty table.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	h.respondQuote(c)
}

type checkoutRequest struct {
	DiscountPercent any    `json:"discount_percent"`
	FileName        string `json:"file_name"`
	SkipSummary     bool   `json:"skip_summary"`
}

// Checkout captures a snapshot with the given discount and returns it as
// JSON for the summary popup.
func (h *QuoteHandler) Checkout(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	req, ok := bindCheckout(c, h.logger)
	if !ok {
		return
	}

	snap := h.builder.Checkout(numeric.ParseDecimalOrZero(rawString(req.DiscountPercent)))

	rows := make([]gin.H, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		rows = append(rows, rowPayload(row))
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":    rows,
		"empty":   len(rows) == 0,
		"summary": snap.Summary,
	})
}

// Export renders the snapshot as a CSV attachment, archiving it when the
// archive repository is configured. Export never fails on a bad file name.
func (h *QuoteHandler) Export(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	req, ok := bindCheckout(c, h.logger)
	if !ok {
		return
	}

	snap := h.builder.Checkout(numeric.ParseDecimalOrZero(rawString(req.DiscountPercent)))

	var summary *models.QuoteSummary
	if !req.SkipSummary {
		summary = &snap.Summary
	}

	payload := export.Render(snap.Rows, summary, h.exportColumns)
	fileName := export.SanitizeFileName(req.FileName)

	if h.archive != nil {
		if err := h.archive.SaveQuoteRecord(c.Request.Context(), models.NewQuoteRecord(fileName, snap)); err != nil {
			// The archive is best-effort; the user still gets their file.
			h.logger.Error("failed archiving quote export", zap.Error(err))
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(payload))
}

func (h *QuoteHandler) respondQuote(c *gin.Context) {
	rows := h.builder.View()
	payload := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, rowPayload(row))
	}

	c.JSON(http.StatusOK, gin.H{"rows": payload, "empty": len(payload) == 0})
}

func (h *QuoteHandler) requireReady(c *gin.Context) bool {
	if h.builder.Ready() {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog is still loading"})
	return false
}

func bindCheckout(c *gin.Context, logger *zap.Logger) (checkoutRequest, bool) {
	var req checkoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("invalid checkout payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return checkoutRequest{}, false
		}
	}
	return req, true
}

func rowPayload(row models.DisplayRow) gin.H {
	payload := gin.H{}
	for field, value := range row.Fields {
		payload[field] = value
	}
	payload[models.ColumnQuantity] = row.Quantity
	payload["Final Price"] = fmt.Sprintf("%.2f", row.FinalPrice)
	return payload
}

// rawString renders an arbitrary JSON value the way the browser would have
// sent it from a text input, feeding the parse-or-zero pipeline.
func rawString(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
