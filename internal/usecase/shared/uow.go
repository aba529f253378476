package shared

import (
	"context"
	"time"

	"maspatas/internal/domain/catalog"
	"maspatas/internal/domain/sale"
	"maspatas/internal/domain/user"
	"maspatas/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: command-side reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Sales() SaleRepository
	Idempotency() IdempotencyRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	Customers() CustomerRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*CustomerSnapshot, error)
	SaleByID(ctx context.Context, id uuid.UUID) (*SaleSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type SaleRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *sale.Sale) (uuid.UUID, error)
	// MarkPaid transitions Pending -> Paid; returns affected row count so
	// callers can detect a lost race against another terminal transition.
	MarkPaid(ctx context.Context, tx db.DBTX, id uuid.UUID, method sale.PaymentMethod) (int64, error)
	MarkCancelled(ctx context.Context, tx db.DBTX, id uuid.UUID) (int64, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key for this request. It reports false when the
	// key already exists, in which case the caller inspects the stored row.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultSaleID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}

type InventoryRepository interface {
	// AdjustStock applies a delta to the product stock and returns the new
	// balance; a negative result is rejected at the SQL level.
	AdjustStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, delta int64) (int64, error)
	RecordMovement(ctx context.Context, tx db.DBTX, m MovementRecord) (uuid.UUID, error)
}

type ProductRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *catalog.Product) (uuid.UUID, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *catalog.Customer) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, c *catalog.Customer) (int64, error)
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
