package order_test

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sonuudigital/nimblestore/internal/events"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/order"
	"github.com/sonuudigital/nimblestore/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps products in memory and only keeps a transaction's writes when it succeeds.
type fakeStore struct {
	products  []repository.Product
	outbox    []repository.CreateOutboxEventParams
	outboxErr error
	txCount   int
	locks     [][]string
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(q order.StockQuerier) error) error {
	s.txCount++
	tx := &fakeTx{products: slices.Clone(s.products), outboxErr: s.outboxErr}
	err := fn(tx)
	s.locks = append(s.locks, tx.locks...)
	if err != nil {
		return err
	}
	s.products = tx.products
	s.outbox = append(s.outbox, tx.outbox...)
	return nil
}

func (s *fakeStore) quantityOf(name string) int32 {
	for _, p := range s.products {
		if p.Name == name {
			return p.Quantity
		}
	}
	return -1
}

type fakeTx struct {
	products  []repository.Product
	outbox    []repository.CreateOutboxEventParams
	outboxErr error
	locks     [][]string
}

func (tx *fakeTx) ListProductsByNamesForUpdate(_ context.Context, names []string) ([]repository.Product, error) {
	tx.locks = append(tx.locks, slices.Clone(names))
	var found []repository.Product
	for _, p := range tx.products {
		if slices.Contains(names, p.Name) {
			found = append(found, p)
		}
	}
	return found, nil
}

func (tx *fakeTx) DecrementProductStock(_ context.Context, arg repository.DecrementProductStockParams) (repository.Product, error) {
	for i := range tx.products {
		if tx.products[i].ID == arg.ID {
			tx.products[i].Quantity -= arg.Amount
			return tx.products[i], nil
		}
	}
	return repository.Product{}, errors.New("no rows")
}

func (tx *fakeTx) CreateOutboxEvent(_ context.Context, arg repository.CreateOutboxEventParams) error {
	if tx.outboxErr != nil {
		return tx.outboxErr
	}
	tx.outbox = append(tx.outbox, arg)
	return nil
}

type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetProducts(ctx context.Context) ([]repository.Product, bool) {
	args := m.Called(ctx)
	return nil, args.Bool(1)
}

func (m *MockProductCache) Generation(ctx context.Context) (int64, bool) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *MockProductCache) SetProducts(ctx context.Context, generation int64, products []repository.Product) {
	m.Called(ctx, generation, products)
}

func (m *MockProductCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

func newStore() *fakeStore {
	return &fakeStore{products: []repository.Product{
		{ID: 1, Name: "P1", Price: decimal.RequireFromString("10.00"), Quantity: 100},
		{ID: 2, Name: "P2", Price: decimal.RequireFromString("15.00"), Quantity: 200},
	}}
}

func TestPlaceOrder(t *testing.T) {
	logger := logs.NewSlogLogger()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newStore()
		productCache := new(MockProductCache)
		productCache.On("Invalidate", mock.Anything).Once()

		result, err := order.NewProcessor(store, productCache, logger).PlaceOrder(ctx, []order.Line{
			{Product: "P1", Quantity: 2},
			{Product: "P2", Quantity: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, "65.00", result.Total.StringFixed(2))
		assert.Equal(t, int32(98), store.quantityOf("P1"))
		assert.Equal(t, int32(197), store.quantityOf("P2"))
		productCache.AssertExpectations(t)

		require.Len(t, store.outbox, 1)
		assert.Equal(t, events.OrderPlacedEventName, store.outbox[0].EventName)
		assert.Equal(t, result.OrderID, store.outbox[0].AggregateID)
		_, err = uuid.Parse(result.OrderID)
		assert.NoError(t, err)

		var event events.OrderPlacedEvent
		require.NoError(t, json.Unmarshal(store.outbox[0].Payload, &event))
		assert.Len(t, event.Items, 2)
		assert.True(t, event.Total.Equal(decimal.NewFromInt(65)))
	})

	t.Run("Same Product Twice Sees First Decrement", func(t *testing.T) {
		store := newStore()

		_, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{
			{Product: "P1", Quantity: 60},
			{Product: "P1", Quantity: 50},
		})

		var stockErr *order.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "P1", stockErr.Product)
		assert.Equal(t, int32(40), stockErr.Available)
		assert.Equal(t, int32(100), store.quantityOf("P1"))
	})

	t.Run("Same Product Twice Within Stock", func(t *testing.T) {
		store := newStore()

		result, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{
			{Product: "P1", Quantity: 60},
			{Product: "P1", Quantity: 40},
		})

		require.NoError(t, err)
		assert.Equal(t, "1000.00", result.Total.StringFixed(2))
		assert.Equal(t, int32(0), store.quantityOf("P1"))
	})

	t.Run("Unknown Product Rolls Back Earlier Lines", func(t *testing.T) {
		store := newStore()
		productCache := new(MockProductCache)

		_, err := order.NewProcessor(store, productCache, logger).PlaceOrder(ctx, []order.Line{
			{Product: "P1", Quantity: 2},
			{Product: "Nope", Quantity: 1},
		})

		assert.ErrorIs(t, err, order.ErrProductNotFound)
		assert.Equal(t, int32(100), store.quantityOf("P1"))
		assert.Empty(t, store.outbox)
		productCache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("Insufficient Stock Rolls Back Earlier Lines", func(t *testing.T) {
		store := newStore()

		_, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{
			{Product: "P1", Quantity: 2},
			{Product: "P2", Quantity: 201},
		})

		var stockErr *order.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "P2", stockErr.Product)
		assert.Equal(t, int32(100), store.quantityOf("P1"))
		assert.Equal(t, int32(200), store.quantityOf("P2"))
	})

	t.Run("Ambiguous Product Name", func(t *testing.T) {
		store := newStore()
		store.products = append(store.products, repository.Product{ID: 3, Name: "P1", Price: decimal.NewFromInt(1), Quantity: 5})

		_, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{{Product: "P1", Quantity: 1}})

		var ambiguous *order.AmbiguousProductError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "P1", ambiguous.Product)
		assert.Equal(t, int32(100), store.products[0].Quantity)
	})

	t.Run("Outbox Failure Rolls Back", func(t *testing.T) {
		store := newStore()
		store.outboxErr = errors.New("db error")

		_, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{{Product: "P1", Quantity: 1}})

		assert.ErrorContains(t, err, "db error")
		assert.Equal(t, int32(100), store.quantityOf("P1"))
	})

	t.Run("Locks Every Product In One Statement", func(t *testing.T) {
		store := newStore()

		_, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{
			{Product: "P2", Quantity: 1},
			{Product: "P1", Quantity: 1},
			{Product: "P2", Quantity: 1},
		})

		require.NoError(t, err)
		require.Len(t, store.locks, 1)
		assert.ElementsMatch(t, []string{"P1", "P2"}, store.locks[0])
		assert.Equal(t, int32(198), store.quantityOf("P2"))
	})

	t.Run("Zero Quantity Line Leaves Stock Untouched", func(t *testing.T) {
		store := newStore()

		result, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{
			{Product: "P1", Quantity: 0},
			{Product: "P2", Quantity: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, "15.00", result.Total.StringFixed(2))
		assert.Equal(t, int32(100), store.quantityOf("P1"))
		assert.Equal(t, int32(199), store.quantityOf("P2"))

		var event events.OrderPlacedEvent
		require.Len(t, store.outbox, 1)
		require.NoError(t, json.Unmarshal(store.outbox[0].Payload, &event))
		assert.Len(t, event.Items, 1)
	})

	t.Run("Zero Quantity Line Still Needs A Known Product", func(t *testing.T) {
		store := newStore()

		_, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, []order.Line{{Product: "Nope", Quantity: 0}})

		assert.ErrorIs(t, err, order.ErrProductNotFound)
	})

	t.Run("Empty Order Opens No Transaction", func(t *testing.T) {
		store := newStore()

		result, err := order.NewProcessor(store, nil, logger).PlaceOrder(ctx, nil)

		require.NoError(t, err)
		assert.True(t, result.Total.IsZero())
		assert.Equal(t, 0, store.txCount)
	})
}
