package client

import (
	"context"

	"maspatas/internal/domain/sale"

	"github.com/google/uuid"
)

// Workflow drives the entry form's submit path: build the draft, record the
// sale, optionally pay it in the same gesture.
type Workflow struct {
	gateway *Gateway
}

func NewWorkflow(gateway *Gateway) *Workflow {
	return &Workflow{gateway: gateway}
}

// PayNow asks SubmitDraft to pay the sale immediately after recording it.
type PayNow struct {
	Method string
}

// SubmitOutcome reports what actually happened. Recording and payment are
// separate server operations; the payment can fail after the sale is safely
// recorded, which is a partial success, not a rollback.
type SubmitOutcome struct {
	Sale       *Sale
	Paid       bool
	PaymentErr error
}

// SubmitDraft validates and submits the draft. Each submission mints fresh
// request ids; resubmitting the same draft after a reported failure creates
// a new attempt, while transport-level retries inside the gateway reuse the
// id and stay idempotent.
func (w *Workflow) SubmitDraft(ctx context.Context, draft *sale.Draft, payNow *PayNow) (*SubmitOutcome, error) {
	items, err := draft.Build()
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	wireItems := make([]SellItemWire, 0, len(items))
	for _, item := range items {
		wireItems = append(wireItems, SellItemWire{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Float(),
		})
	}

	recorded, err := w.gateway.Sell(ctx, SellRequest{
		RequestID:  uuid.New(),
		CustomerID: draft.CustomerID(),
		Items:      wireItems,
	})
	if err != nil {
		return nil, err
	}

	outcome := &SubmitOutcome{Sale: recorded}
	if payNow == nil {
		return outcome, nil
	}

	paid, err := w.gateway.Pay(ctx, recorded.ID, PayRequest{
		RequestID: uuid.New(),
		Method:    payNow.Method,
		Amount:    recorded.Total,
	})
	if err != nil {
		// The sale exists; surface the failed payment alongside it.
		outcome.PaymentErr = err
		return outcome, nil
	}

	outcome.Sale = paid
	outcome.Paid = true
	return outcome, nil
}

// PaySale retries payment for an already recorded sale.
func (w *Workflow) PaySale(ctx context.Context, saleID uuid.UUID, method string, amount float64) (*Sale, error) {
	return w.gateway.Pay(ctx, saleID, PayRequest{
		RequestID: uuid.New(),
		Method:    method,
		Amount:    amount,
	})
}

// CancelSale cancels a pending sale.
func (w *Workflow) CancelSale(ctx context.Context, saleID uuid.UUID) (*Sale, error) {
	return w.gateway.Cancel(ctx, saleID, CancelRequest{RequestID: uuid.New()})
}
