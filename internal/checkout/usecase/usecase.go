package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-sale-terminal/internal/auth"
	"github.com/fekuna/omnipos-sale-terminal/internal/cart"
	"github.com/fekuna/omnipos-sale-terminal/internal/catalog"
	"github.com/fekuna/omnipos-sale-terminal/internal/checkout"
	"github.com/fekuna/omnipos-sale-terminal/internal/checkout/dto"
	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/fekuna/omnipos-sale-terminal/internal/notice"
	"github.com/fekuna/omnipos-sale-terminal/internal/payment"
	"github.com/fekuna/omnipos-sale-terminal/internal/receipt"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/fekuna/omnipos-sale-terminal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type checkoutUseCase struct {
	ledger    cart.UseCase
	selector  payment.UseCase
	products  catalog.UseCase
	submitter checkout.Submitter
	history   checkout.HistoryRepository
	printer   receipt.Printer
	events    checkout.EventPublisher // nil when the broker is disabled
	notices   *notice.Bus
	metrics   *metrics.TerminalMetrics // nil in tests
	header    receipt.Header
	logger    logger.ZapLogger

	merchantID string

	mu       sync.Mutex
	lastSale *model.CompletedSale
}

type Deps struct {
	Ledger    cart.UseCase
	Selector  payment.UseCase
	Products  catalog.UseCase
	Submitter checkout.Submitter
	History   checkout.HistoryRepository
	Printer   receipt.Printer
	Events    checkout.EventPublisher
	Notices   *notice.Bus
	Metrics   *metrics.TerminalMetrics
	Header    receipt.Header
	Logger    logger.ZapLogger

	MerchantID string
}

func NewCheckoutUseCase(d Deps) checkout.UseCase {
	return &checkoutUseCase{
		ledger:     d.Ledger,
		selector:   d.Selector,
		products:   d.Products,
		submitter:  d.Submitter,
		history:    d.History,
		printer:    d.Printer,
		events:     d.Events,
		notices:    d.Notices,
		metrics:    d.Metrics,
		header:     d.Header,
		logger:     d.Logger,
		merchantID: d.MerchantID,
	}
}

func (uc *checkoutUseCase) Checkout(ctx context.Context) (*model.CompletedSale, error) {
	lines := uc.ledger.Lines()
	if len(lines) == 0 {
		uc.notices.Notify(notice.ToneWarning, "cart is empty")
		uc.countRejection("empty_cart")
		return nil, checkout.ErrEmptyCart
	}

	// Totals derive from the same snapshot the submission carries; the live
	// ledger may move underneath a slow backend call.
	totals := model.TotalsOf(lines)
	sel := uc.selector.Selection()

	cashReceived := totals.Total
	change := decimal.Zero
	if sel.Method.ID == model.MethodCash {
		cashReceived = sel.CashReceived
		delta := cashReceived.Sub(totals.Total)
		if delta.IsNegative() {
			shortfall := delta.Neg()
			uc.notices.Notify(notice.ToneError,
				fmt.Sprintf("cash received is short by %s", shortfall.StringFixed(2)))
			uc.countRejection("insufficient_cash")
			return nil, checkout.ErrInsufficientCash
		}
		change = delta
	}

	merchantID := uc.merchantFrom(ctx)
	cashier := uc.cashierFrom(ctx)

	req := &dto.SubmitRequest{
		CashierID:     cashier.ID,
		Subtotal:      totals.Subtotal.Round(2),
		Tax:           totals.Tax.Round(2),
		Total:         totals.Total.Round(2),
		PaymentMethod: sel.Method.ID,
		CashReceived:  cashReceived.Round(2),
		ChangeAmount:  change.Round(2),
		Items:         normalizeItems(lines),
	}

	start := time.Now()
	result, err := uc.submitter.Submit(ctx, merchantID, req)
	if uc.metrics != nil {
		uc.metrics.SubmitLatencyMS.Observe(float64(time.Since(start).Milliseconds()))
	}
	if err != nil {
		// Abort everything: no stock decrement, no cart clear, no history
		// entry. The cashier re-attempts explicitly.
		uc.logger.Error("sale submission failed", zap.Error(err))
		uc.notices.Notify(notice.ToneError, submitFailureMessage(err))
		uc.countRejection("backend")
		return nil, err
	}

	receiptNo := result.ReceiptNo
	if receiptNo == "" {
		receiptNo = fallbackReceiptNo()
	}
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	sale := &model.CompletedSale{
		ReceiptNo:     receiptNo,
		MerchantID:    merchantID,
		StoreName:     uc.header.StoreName,
		CashierID:     cashier.ID,
		CashierName:   cashier.Name,
		Items:         saleItems(req.Items),
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		CashReceived:  req.CashReceived,
		ChangeAmount:  req.ChangeAmount,
		CreatedAt:     createdAt,
	}

	if err := uc.history.Append(ctx, sale); err != nil {
		// The backend holds the authoritative record; a local log failure
		// must not undo a completed sale.
		uc.logger.Warn("failed to append sale history", zap.Error(err))
	}

	for _, line := range lines {
		if line.StockTracked() {
			uc.products.DecrementStock(line.ProductID, line.Quantity)
		}
	}

	// Only the submitted quantities leave the ledger; lines added while the
	// submission was in flight stay for the next sale.
	uc.ledger.ClearSubmitted(ctx, lines)
	uc.selector.ResetCash()

	doc := receipt.Render(sale, uc.header, sel.Method.Label)
	if err := uc.printer.Print(ctx, doc); err != nil {
		uc.logger.Warn("receipt print failed", zap.Error(err))
	}

	uc.mu.Lock()
	uc.lastSale = sale
	uc.mu.Unlock()

	uc.publishSaleEvent(ctx, sale)
	if uc.metrics != nil {
		uc.metrics.SalesCompleted.Inc()
	}
	uc.notices.Notify(notice.ToneSuccess, fmt.Sprintf("sale %s completed", sale.ReceiptNo))
	uc.logger.Info("sale completed",
		zap.String("receipt_no", sale.ReceiptNo),
		zap.String("payment_method", sale.PaymentMethod),
		zap.String("total", sale.Total.StringFixed(2)),
	)
	return sale, nil
}

// History lists under the same merchant the sales were appended with, so a
// header-supplied identity reads back its own log.
func (uc *checkoutUseCase) History(ctx context.Context, limit int) ([]model.CompletedSale, error) {
	return uc.history.List(ctx, uc.merchantFrom(ctx), limit)
}

func (uc *checkoutUseCase) LastSale() (*model.CompletedSale, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.lastSale == nil {
		return nil, checkout.ErrNoSaleYet
	}
	return uc.lastSale, nil
}

func (uc *checkoutUseCase) ReprintLast(ctx context.Context) error {
	sale, err := uc.LastSale()
	if err != nil {
		return err
	}
	doc := receipt.Render(sale, uc.header, uc.methodLabel(sale.PaymentMethod))
	return uc.printer.Print(ctx, doc)
}

func (uc *checkoutUseCase) methodLabel(methodID string) string {
	for _, m := range uc.selector.Methods() {
		if m.ID == methodID {
			return m.Label
		}
	}
	return methodID
}

func (uc *checkoutUseCase) merchantFrom(ctx context.Context) string {
	if id := auth.GetMerchantID(ctx); id != "" {
		return id
	}
	return uc.merchantID
}

func (uc *checkoutUseCase) cashierFrom(ctx context.Context) auth.Cashier {
	return auth.GetCashier(ctx)
}

func (uc *checkoutUseCase) countRejection(reason string) {
	if uc.metrics != nil {
		uc.metrics.CheckoutRejected.WithLabelValues(reason).Inc()
	}
}

type saleCompletedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   saleEventPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type saleEventPayload struct {
	MerchantID    string           `json:"merchant_id"`
	ReceiptNo     string           `json:"receipt_no"`
	Total         decimal.Decimal  `json:"total"`
	PaymentMethod string           `json:"payment_method"`
	Items         []model.SaleItem `json:"items"`
}

func (uc *checkoutUseCase) publishSaleEvent(ctx context.Context, sale *model.CompletedSale) {
	if uc.events == nil {
		return
	}
	event := saleCompletedEvent{
		EventID:   uuid.New().String(),
		EventType: "SaleCompleted",
		Payload: saleEventPayload{
			MerchantID:    sale.MerchantID,
			ReceiptNo:     sale.ReceiptNo,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			Items:         sale.Items,
		},
		Timestamp: time.Now().UTC(),
	}
	if err := uc.events.Publish(ctx, sale.MerchantID, event); err != nil {
		uc.logger.Warn("failed to publish sale event", zap.Error(err))
	}
}

func normalizeItems(lines []model.CartLine) []dto.SubmitItem {
	items := make([]dto.SubmitItem, len(lines))
	for i, l := range lines {
		items[i] = dto.SubmitItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			SKU:       l.SKU,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			TaxRate:   l.TaxRate,
			Type:      l.Type,
		}
	}
	return items
}

func saleItems(items []dto.SubmitItem) []model.SaleItem {
	out := make([]model.SaleItem, len(items))
	for i, item := range items {
		out[i] = model.SaleItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			Type:      item.Type,
		}
	}
	return out
}

func submitFailureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "checkout failed, please try again"
}

func fallbackReceiptNo() string {
	return fmt.Sprintf("POS-%s-%s", time.Now().Format("20060102150405"), uuid.New().String()[:8])
}
