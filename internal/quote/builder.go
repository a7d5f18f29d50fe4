package quote

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cubixparts/quotebuilder/internal/catalog"
	"github.com/cubixparts/quotebuilder/internal/domain/models"
	"github.com/cubixparts/quotebuilder/pkg/numeric"
)

// ErrUnknownPart signals an attempt to select a part the catalog does not
// carry.
var ErrUnknownPart = errors.New("part not found in catalog")

// ErrNotSelected signals a quantity edit against a part that is not in the
// working selection.
var ErrNotSelected = errors.New("part is not selected")

// Builder is the application-state object owning the selection and override
// state as one unit. Every mutation is a complete transaction: the selection
// and the override map change together under the same lock, so an override
// can never outlive its selection. The catalog is attached once when loading
// finishes; until then the builder reports not ready.
type Builder struct {
	mu        sync.Mutex
	store     *catalog.Store
	selection *SelectionSet
	overrides *PriceOverrideMap
	logger    *zap.Logger
}

// NewBuilder creates an empty quote builder.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		selection: NewSelectionSet(),
		overrides: NewPriceOverrideMap(),
		logger:    logger,
	}
}

// AttachCatalog hands the loaded catalog to the builder and flips it ready.
func (b *Builder) AttachCatalog(store *catalog.Store) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.store = store
}

// Ready reports whether the catalog has finished loading.
func (b *Builder) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store != nil
}

// Suggest returns up to limit part numbers matching the query prefix,
// excluding parts already selected. An empty query yields nothing.
func (b *Builder) Suggest(query string, limit int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.store == nil {
		return nil
	}

	excluding := make(map[string]struct{}, b.selection.Len())
	for _, partNo := range b.selection.Parts() {
		excluding[partNo] = struct{}{}
	}

	return b.store.FindByPrefix(query, excluding, limit)
}

// Add validates the part against the catalog and appends it to the
// selection. Re-adding a selected part is a no-op.
func (b *Builder) Add(partNo string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.store == nil {
		return ErrUnknownPart
	}

	record, ok := b.store.Get(partNo)
	if !ok {
		return ErrUnknownPart
	}

	if b.selection.Add(record.PartNo()) {
		b.logger.Debug("part selected", zap.String("part_no", record.PartNo()))
	}
	return nil
}

// Remove drops the part from the selection and clears its override in the
// same action. Removing an unselected part is a no-op.
func (b *Builder) Remove(partNo string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := b.selection.Remove(partNo)
	b.overrides.Clear(partNo)
	if removed {
		b.logger.Debug("part removed", zap.String("part_no", partNo))
	}
}

// SetQuantity records a quantity edit for a selected part. The raw input
// goes through the parse-or-zero policy, so non-numeric text silently
// becomes quantity zero and final price 0.00 rather than an error. The
// resolved row is returned for immediate display.
func (b *Builder) SetQuantity(partNo, rawQuantity string) (models.DisplayRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.store == nil {
		return models.DisplayRow{}, ErrUnknownPart
	}

	record, ok := b.store.Get(partNo)
	if !ok {
		return models.DisplayRow{}, ErrUnknownPart
	}
	if !b.selection.Contains(record.PartNo()) {
		return models.DisplayRow{}, ErrNotSelected
	}

	quantity := numeric.ParseQuantityOrZero(rawQuantity)
	finalPrice := numeric.Round2(numeric.ParseDecimalOrZero(record.ListPrice()) * float64(quantity))
	b.overrides.Set(record.PartNo(), quantity, finalPrice)

	return models.DisplayRow{
		PartNo:     record.PartNo(),
		Fields:     record,
		Quantity:   quantity,
		FinalPrice: finalPrice,
	}, nil
}

// Override exposes the stored override for a part, if any.
func (b *Builder) Override(partNo string) (models.PriceOverride, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overrides.Get(partNo)
}

// View projects the current selection into display rows. An empty slice
// means the caller should render its explicit no-data state.
func (b *Builder) View() []models.DisplayRow {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.projectLocked()
}

// Checkout captures a snapshot of the current rows with the given discount
// applied. The snapshot is transient; nothing about the working state
// changes.
func (b *Builder) Checkout(discountPercent float64) models.QuoteSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	rows := b.projectLocked()
	subtotal := Subtotal(rows)

	return models.QuoteSnapshot{
		Rows: rows,
		Summary: models.QuoteSummary{
			Subtotal:        subtotal,
			DiscountPercent: discountPercent,
			FinalTotal:      Discounted(subtotal, discountPercent),
		},
		CreatedAt: time.Now().UTC(),
	}
}

func (b *Builder) projectLocked() []models.DisplayRow {
	if b.store == nil {
		return nil
	}

	rows, missing := Project(b.store, b.selection, b.overrides)
	for _, partNo := range missing {
		b.logger.Warn("selected part has no catalog record, dropping row", zap.String("part_no", partNo))
	}
	return rows
}
