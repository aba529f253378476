package repository

import (
	"context"
	"errors"

	"maspatas/internal/domain/sale"
	"maspatas/internal/infra"
	"maspatas/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
)

func classifyPgError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		case pgErrCodeCheckViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		}
	}
	return infra.WrapRepoErr(msg, err)
}

type SaleRepository struct{}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func (r *SaleRepository) Create(ctx context.Context, tx db.DBTX, s *sale.Sale) (uuid.UUID, error) {
	const insertSale = `
INSERT INTO sales (id, customer_id, total_cents, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
`
	_, err := tx.Exec(ctx, insertSale,
		s.ID(), s.CustomerID(), s.Total().Cents(), s.Status().String(), s.CreatedAt())
	if err != nil {
		return uuid.Nil, classifyPgError("failed to insert sale", err)
	}

	const insertItem = `
INSERT INTO sale_items (id, sale_id, product_id, position, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5, $6)
`
	for i, item := range s.Items() {
		_, err := tx.Exec(ctx, insertItem,
			uuid.New(), s.ID(), item.ProductID(), i, item.Quantity(), item.UnitPrice().Cents())
		if err != nil {
			return uuid.Nil, classifyPgError("failed to insert sale item", err)
		}
	}

	return s.ID(), nil
}

// MarkPaid only fires while the sale is still pending; zero affected rows
// means the sale reached a terminal state first.
func (r *SaleRepository) MarkPaid(ctx context.Context, tx db.DBTX, id uuid.UUID, method sale.PaymentMethod) (int64, error) {
	const q = `
UPDATE sales
SET status = 'paid', payment_method = $2, updated_at = now()
WHERE id = $1 AND status = 'pending'
`
	tag, err := tx.Exec(ctx, q, id, method.String())
	if err != nil {
		return 0, classifyPgError("failed to mark sale paid", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SaleRepository) MarkCancelled(ctx context.Context, tx db.DBTX, id uuid.UUID) (int64, error) {
	const q = `
UPDATE sales
SET status = 'cancelled', updated_at = now()
WHERE id = $1 AND status = 'pending'
`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return 0, classifyPgError("failed to mark sale cancelled", err)
	}
	return tag.RowsAffected(), nil
}
