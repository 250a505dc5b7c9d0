package order

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sonuudigital/nimblestore/internal/cache"
	"github.com/sonuudigital/nimblestore/internal/events"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

// StockQuerier is the set of queries an order runs inside its transaction.
type StockQuerier interface {
	ListProductsByNamesForUpdate(ctx context.Context, names []string) ([]repository.Product, error)
	DecrementProductStock(ctx context.Context, arg repository.DecrementProductStockParams) (repository.Product, error)
	CreateOutboxEvent(ctx context.Context, arg repository.CreateOutboxEventParams) error
}

// Store runs fn in one transaction and rolls back every change when fn fails.
type Store interface {
	ExecTx(ctx context.Context, fn func(q StockQuerier) error) error
}

type Result struct {
	OrderID string
	Total   decimal.Decimal
}

type Processor struct {
	store      Store
	cache      cache.ProductCache
	logger     logs.Logger
	newOrderID func() string
}

func NewProcessor(store Store, productCache cache.ProductCache, logger logs.Logger) *Processor {
	if productCache == nil {
		productCache = cache.NoopProductCache{}
	}
	return &Processor{
		store:      store,
		cache:      productCache,
		logger:     logger,
		newOrderID: uuid.NewString,
	}
}

// PlaceOrder applies all lines or none of them. Every product the order names
// is locked in one statement, in id order, and stays locked until the
// transaction ends, so concurrent orders neither oversell nor deadlock.
func (p *Processor) PlaceOrder(ctx context.Context, lines []Line) (Result, error) {
	if len(lines) == 0 {
		return Result{Total: decimal.Zero}, nil
	}

	orderID := p.newOrderID()
	total := decimal.Zero
	items := make([]events.OrderItem, 0, len(lines))

	err := p.store.ExecTx(ctx, func(q StockQuerier) error {
		locked, err := lockProducts(ctx, q, lines)
		if err != nil {
			return err
		}

		for _, line := range lines {
			product, err := locked.lookup(line.Product)
			if err != nil {
				return err
			}

			if product.Quantity < line.Quantity {
				return &InsufficientStockError{
					Product:   line.Product,
					Available: product.Quantity,
					Requested: line.Quantity,
				}
			}

			if line.Quantity == 0 {
				continue
			}

			updated, err := q.DecrementProductStock(ctx, repository.DecrementProductStockParams{
				Amount: line.Quantity,
				ID:     product.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to decrement stock for product %d: %w", product.ID, err)
			}
			locked[line.Product] = []repository.Product{updated}

			total = total.Add(product.Price.Mul(decimal.NewFromInt32(line.Quantity)))
			items = append(items, events.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		return createOrderPlacedEvent(ctx, q, events.OrderPlacedEvent{
			OrderID: orderID,
			Items:   items,
			Total:   total,
		})
	})
	if err != nil {
		return Result{}, err
	}

	p.cache.Invalidate(ctx)
	p.logger.Info("order placed", "orderId", orderID, "lines", len(lines), "total", total.StringFixed(2))

	return Result{OrderID: orderID, Total: total}, nil
}

// lockedProducts maps a product name to every row carrying it.
type lockedProducts map[string][]repository.Product

func (l lockedProducts) lookup(name string) (repository.Product, error) {
	products := l[name]
	switch len(products) {
	case 0:
		return repository.Product{}, ErrProductNotFound
	case 1:
		return products[0], nil
	default:
		return repository.Product{}, &AmbiguousProductError{Product: name}
	}
}

func lockProducts(ctx context.Context, q StockQuerier, lines []Line) (lockedProducts, error) {
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if !slices.Contains(names, line.Product) {
			names = append(names, line.Product)
		}
	}

	products, err := q.ListProductsByNamesForUpdate(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}

	locked := make(lockedProducts, len(names))
	for _, product := range products {
		locked[product.Name] = append(locked[product.Name], product)
	}
	return locked, nil
}

func createOrderPlacedEvent(ctx context.Context, q StockQuerier, event events.OrderPlacedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	if err := q.CreateOutboxEvent(ctx, repository.CreateOutboxEventParams{
		AggregateID: event.OrderID,
		EventName:   events.OrderPlacedEventName,
		Payload:     payload,
	}); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}
