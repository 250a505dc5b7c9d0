package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sonuudigital/nimblestore/internal/db"
	"github.com/sonuudigital/nimblestore/internal/order"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

// OrderRepository runs an order batch inside a single transaction.
type OrderRepository struct {
	db db.DB
}

func NewOrderRepository(conn db.DB) *OrderRepository {
	return &OrderRepository{db: conn}
}

// ExecTx commits only when fn returns nil; every stock decrement made by fn is
// rolled back otherwise.
func (r *OrderRepository) ExecTx(ctx context.Context, fn func(q order.StockQuerier) error) error {
	return execTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(repository.New(tx))
	})
}
