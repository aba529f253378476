//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"maspatas/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestPassword is the plaintext every fixture user can log in with.
const TestPassword = "password123"

var (
	hashOnce     sync.Once
	passwordHash string
)

func testPasswordHash(t *testing.T) string {
	t.Helper()

	hashOnce.Do(func() {
		h, err := password.HashPassword(TestPassword)
		require.NoError(t, err)
		passwordHash = h
	})
	return passwordHash
}

func CreateTestUser(t *testing.T, db DBLike, username, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	email := username + "@example.com"
	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, username, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (username) DO NOTHING",
		userID, username, email, testPasswordHash(t), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestProduct(t *testing.T, db DBLike, name string, priceCents, stock int64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO products (id, name, price_cents, stock, active) VALUES ($1, $2, $3, $4, true)",
		productID, name, priceCents, stock)
	require.NoError(t, err)

	return productID
}

func CreateTestCustomer(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO customers (id, name, email) VALUES ($1, $2, $3)",
		customerID, name, strings.ToLower(strings.ReplaceAll(name, " ", "."))+"@example.com")
	require.NoError(t, err)

	return customerID
}

func ProductStock(t *testing.T, db DBLike, productID uuid.UUID) int64 {
	t.Helper()

	var stock int64
	err := db.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       string
)

// ResetDB truncates every application table between subtests. The table list
// is discovered once per process; schema_migrations survives so migrations
// are not re-applied.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var buildErr error
	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			buildErr = err
			return
		}
		defer rows.Close()

		var tables []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				buildErr = err
				return
			}
			tables = append(tables, name)
		}
		if rows.Err() != nil {
			buildErr = rows.Err()
			return
		}
		if len(tables) == 0 {
			truncateSQL = "SELECT 1"
			return
		}
		truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	})
	if buildErr != nil {
		return buildErr
	}
	if truncateSQL == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}

	_, err := pool.Exec(ctx, truncateSQL)
	return err
}
