package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/sonuudigital/nimblestore/internal/db"
	"github.com/sonuudigital/nimblestore/internal/events"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

const productColumns = "id, name, price, quantity, created_at, updated_at"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ProductRepository writes product rows together with their outbox events.
type ProductRepository struct {
	*repository.Queries
	db db.DB
}

func NewProductRepository(conn db.DB) *ProductRepository {
	return &ProductRepository{
		db:      conn,
		Queries: repository.New(conn),
	}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	var product repository.Product
	err := execTx(ctx, r.db, func(tx pgx.Tx) error {
		q := r.WithTx(tx)

		created, err := q.CreateProduct(ctx, arg)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}

		if err := createProductEvent(ctx, q, events.ProductCreatedEventName, created); err != nil {
			return err
		}

		product = created
		return nil
	})
	if err != nil {
		return repository.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, arg repository.UpdateProductParams) (repository.Product, error) {
	var product repository.Product
	err := execTx(ctx, r.db, func(tx pgx.Tx) error {
		q := r.WithTx(tx)

		updated, err := q.UpdateProduct(ctx, arg)
		if err != nil {
			return err
		}

		if err := createProductEvent(ctx, q, events.ProductUpdatedEventName, updated); err != nil {
			return err
		}

		product = updated
		return nil
	})
	if err != nil {
		return repository.Product{}, err
	}
	return product, nil
}

// PartialUpdateProduct only touches the columns set in changes. Missing rows surface as pgx.ErrNoRows.
func (r *ProductRepository) PartialUpdateProduct(ctx context.Context, id int64, changes repository.ProductChanges) (repository.Product, error) {
	if changes.IsEmpty() {
		return r.Queries.GetProduct(ctx, id)
	}

	query, args, err := buildPartialUpdate(id, changes)
	if err != nil {
		return repository.Product{}, fmt.Errorf("failed to build partial update: %w", err)
	}

	var product repository.Product
	err = execTx(ctx, r.db, func(tx pgx.Tx) error {
		updated, err := scanProduct(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return err
		}

		if err := createProductEvent(ctx, r.WithTx(tx), events.ProductUpdatedEventName, updated); err != nil {
			return err
		}

		product = updated
		return nil
	})
	if err != nil {
		return repository.Product{}, err
	}
	return product, nil
}

func buildPartialUpdate(id int64, changes repository.ProductChanges) (string, []any, error) {
	builder := psql.Update("products")
	if changes.Name != nil {
		builder = builder.Set("name", *changes.Name)
	}
	if changes.Price != nil {
		builder = builder.Set("price", *changes.Price)
	}
	if changes.Quantity != nil {
		builder = builder.Set("quantity", *changes.Quantity)
	}

	return builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + productColumns).
		ToSql()
}

func createProductEvent(ctx context.Context, q *repository.Queries, eventName string, p repository.Product) error {
	payload, err := json.Marshal(toProductEvent(p))
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	if err := q.CreateOutboxEvent(ctx, repository.CreateOutboxEventParams{
		AggregateID: productAggregateID(p.ID),
		EventName:   eventName,
		Payload:     payload,
	}); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}
