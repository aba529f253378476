package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"maspatas/internal/domain/sale"
	"maspatas/internal/infra"
	"maspatas/internal/pkg/clock"
	"maspatas/internal/pkg/errs"
	"maspatas/internal/usecase/queries"
	"maspatas/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSaleNotFound            = errs.New("sale not found")
	ErrCustomerNotFound        = errs.New("customer not found")
	ErrProductNotFound         = errs.New("product not found")
	ErrProductInactive         = errs.New("product is inactive")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrSaleAlreadyFinal        = errs.New("sale is already paid or cancelled")
	ErrAmountMismatch          = errs.New("payment amount does not match sale total")
	ErrInvalidPaymentMethod    = errs.New("invalid payment method")
	ErrDuplicateRequest        = errs.New("request id reused with a different payload")
	ErrRequestInProgress       = errs.New("request is still being processed")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// idempotencyTTL bounds how long a request id stays replayable.
const idempotencyTTL = 24 * time.Hour

type SellInput struct {
	CustomerID *uuid.UUID      `json:"customer_id"`
	Items      []SellItemInput `json:"items"`
}

type SellItemInput struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int64     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

type PayInput struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amount_cents"`
}

// SaleResult carries the post-command view plus whether the request id had
// already completed, in which case the stored outcome is returned untouched.
type SaleResult struct {
	Sale       *queries.SaleView
	IsReplayed bool
}

type SaleCommands interface {
	Sell(ctx context.Context, input SellInput, userID, requestID uuid.UUID) (*SaleResult, error)
	Pay(ctx context.Context, saleID uuid.UUID, input PayInput, userID, requestID uuid.UUID) (*SaleResult, error)
	Cancel(ctx context.Context, saleID uuid.UUID, userID, requestID uuid.UUID) (*SaleResult, error)
}

type saleUseCaseImpl struct {
	uow         shared.UnitOfWork
	saleQueries queries.SaleQueries
	clock       clock.Clock
}

func NewSaleUseCase(uow shared.UnitOfWork, saleQueries queries.SaleQueries, clk clock.Clock) SaleCommands {
	return &saleUseCaseImpl{
		uow:         uow,
		saleQueries: saleQueries,
		clock:       clk,
	}
}

func (u *saleUseCaseImpl) Sell(ctx context.Context, input SellInput, userID, requestID uuid.UUID) (*SaleResult, error) {
	items := make([]sale.LineItem, 0, len(input.Items))
	for _, it := range input.Items {
		item, err := sale.NewLineItem(it.ProductID, it.Quantity, sale.NewMoney(it.UnitPriceCents))
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		items = append(items, item)
	}

	newSale, err := sale.NewSale(input.CustomerID, items, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var (
		resultSaleID uuid.UUID
		replayed     bool
	)
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, replayID, err := u.claimRequest(ctx, tx, requestID, userID, "POST /sales/sell", requestHash(input))
		if err != nil {
			return err
		}
		if !claimed {
			resultSaleID = replayID
			replayed = true
			return nil
		}

		if input.CustomerID != nil {
			if _, err := tx.Reads().CustomerByID(ctx, *input.CustomerID); err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ErrCustomerNotFound
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		for _, item := range newSale.Items() {
			product, err := tx.Reads().ProductByID(ctx, item.ProductID())
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return ErrProductNotFound
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if !product.Active {
				return ErrProductInactive
			}
		}

		saleID, err := tx.Sales().Create(ctx, tx.DB(), newSale)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, item := range newSale.Items() {
			balance, err := tx.Inventory().AdjustStock(ctx, tx.DB(), item.ProductID(), -item.Quantity())
			if err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return ErrInsufficientStock
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			_, err = tx.Inventory().RecordMovement(ctx, tx.DB(), shared.MovementRecord{
				ProductID:    item.ProductID(),
				Type:         "OUT",
				Quantity:     item.Quantity(),
				BalanceAfter: balance,
				Reason:       "sale",
				UserID:       &userID,
				SaleID:       &saleID,
			})
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), requestID, userID, saleID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		resultSaleID = saleID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.loadResult(ctx, resultSaleID, replayed)
}

func (u *saleUseCaseImpl) Pay(ctx context.Context, saleID uuid.UUID, input PayInput, userID, requestID uuid.UUID) (*SaleResult, error) {
	method, err := sale.NewPaymentMethod(input.Method)
	if err != nil {
		return nil, ErrInvalidPaymentMethod
	}

	var (
		resultSaleID uuid.UUID
		replayed     bool
	)
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, replayID, err := u.claimRequest(ctx, tx, requestID, userID, "POST /sales/pay", requestHash(struct {
			SaleID uuid.UUID `json:"sale_id"`
			PayInput
		}{saleID, input}))
		if err != nil {
			return err
		}
		if !claimed {
			resultSaleID = replayID
			replayed = true
			return nil
		}

		snap, err := tx.Reads().SaleByID(ctx, saleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSaleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if sale.Status(snap.Status).IsTerminal() {
			return ErrSaleAlreadyFinal
		}
		if input.AmountCents != snap.TotalCents {
			return ErrAmountMismatch
		}

		affected, err := tx.Sales().MarkPaid(ctx, tx.DB(), saleID, method)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			// Another request finalized the sale between the read and the update.
			return ErrSaleAlreadyFinal
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), requestID, userID, saleID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		resultSaleID = saleID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.loadResult(ctx, resultSaleID, replayed)
}

func (u *saleUseCaseImpl) Cancel(ctx context.Context, saleID uuid.UUID, userID, requestID uuid.UUID) (*SaleResult, error) {
	var (
		resultSaleID uuid.UUID
		replayed     bool
	)
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, replayID, err := u.claimRequest(ctx, tx, requestID, userID, "POST /sales/cancel", requestHash(struct {
			SaleID uuid.UUID `json:"sale_id"`
		}{saleID}))
		if err != nil {
			return err
		}
		if !claimed {
			resultSaleID = replayID
			replayed = true
			return nil
		}

		snap, err := tx.Reads().SaleByID(ctx, saleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSaleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if sale.Status(snap.Status).IsTerminal() {
			return ErrSaleAlreadyFinal
		}

		affected, err := tx.Sales().MarkCancelled(ctx, tx.DB(), saleID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrSaleAlreadyFinal
		}

		// Cancelling puts the reserved units back on the shelf.
		for _, item := range snap.Items {
			balance, err := tx.Inventory().AdjustStock(ctx, tx.DB(), item.ProductID, item.Quantity)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			_, err = tx.Inventory().RecordMovement(ctx, tx.DB(), shared.MovementRecord{
				ProductID:    item.ProductID,
				Type:         "IN",
				Quantity:     item.Quantity,
				BalanceAfter: balance,
				Reason:       "sale cancelled",
				UserID:       &userID,
				SaleID:       &saleID,
			})
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), requestID, userID, saleID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		resultSaleID = saleID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.loadResult(ctx, resultSaleID, replayed)
}

// claimRequest runs the request-id handshake. The first caller claims the
// key and proceeds; a replay of a completed request returns its stored sale
// id; anything else is a misuse of the key.
func (u *saleUseCaseImpl) claimRequest(
	ctx context.Context,
	tx shared.Tx,
	requestID, userID uuid.UUID,
	endpoint, hash string,
) (claimed bool, replaySaleID uuid.UUID, err error) {
	now := u.clock.Now()
	expiresAt := now.Add(idempotencyTTL)

	claimed, err = tx.Idempotency().TryInsert(ctx, tx.DB(), requestID, userID, endpoint, hash, expiresAt)
	if err != nil {
		return false, uuid.Nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if claimed {
		return true, uuid.Nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, requestID, userID)
	if err != nil {
		return false, uuid.Nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	// A row past its TTL no longer guards anything; purge and reclaim the
	// key as a fresh request.
	if !existing.ExpiresAt.After(now) {
		if _, err := tx.Idempotency().DeleteExpired(ctx, tx.DB(), now); err != nil {
			return false, uuid.Nil, errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		claimed, err = tx.Idempotency().TryInsert(ctx, tx.DB(), requestID, userID, endpoint, hash, expiresAt)
		if err != nil {
			return false, uuid.Nil, errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if claimed {
			return true, uuid.Nil, nil
		}
		return false, uuid.Nil, ErrRequestInProgress
	}

	switch existing.Status {
	case "completed":
		if existing.RequestHash != hash {
			return false, uuid.Nil, ErrDuplicateRequest
		}
		if existing.ResultSaleID == nil {
			return false, uuid.Nil, errs.New("completed request missing result sale id")
		}
		return false, *existing.ResultSaleID, nil

	case "processing":
		if existing.RequestHash != hash {
			return false, uuid.Nil, ErrDuplicateRequest
		}
		return false, uuid.Nil, ErrRequestInProgress

	default:
		return false, uuid.Nil, errs.New("invalid idempotency key status")
	}
}

func (u *saleUseCaseImpl) loadResult(ctx context.Context, saleID uuid.UUID, replayed bool) (*SaleResult, error) {
	view, err := u.saleQueries.GetByID(ctx, saleID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &SaleResult{Sale: view, IsReplayed: replayed}, nil
}

func requestHash(payload any) string {
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
