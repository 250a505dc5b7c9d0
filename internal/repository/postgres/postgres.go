package postgres

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/sonuudigital/nimblestore/internal/db"
	"github.com/sonuudigital/nimblestore/internal/events"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

func execTx(ctx context.Context, conn db.DB, fn func(tx pgx.Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err = fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanProduct(row pgx.Row) (repository.Product, error) {
	var p repository.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Quantity,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func toProductEvent(p repository.Product) events.Product {
	return events.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}

func productAggregateID(id int64) string {
	return strconv.FormatInt(id, 10)
}
