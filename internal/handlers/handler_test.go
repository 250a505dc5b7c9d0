package handlers_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sonuudigital/nimblestore/internal/catalog"
	"github.com/sonuudigital/nimblestore/internal/order"
	"github.com/sonuudigital/nimblestore/internal/repository"
	"github.com/stretchr/testify/mock"
)

const (
	productsURL = "/products/"
	orderURL    = "/order/"
	dbErrorMsg  = "db error"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context, page catalog.Page) ([]repository.Product, error) {
	args := m.Called(ctx, page)
	if p, ok := args.Get(0).([]repository.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id int64) (repository.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, input catalog.ProductInput) (repository.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(repository.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id int64, input catalog.ProductInput) (repository.Product, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(repository.Product), args.Error(1)
}

func (m *MockCatalogService) PartialUpdateProduct(ctx context.Context, id int64, input catalog.ProductInput) (repository.Product, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(repository.Product), args.Error(1)
}

type MockOrderProcessor struct {
	mock.Mock
}

func (m *MockOrderProcessor) PlaceOrder(ctx context.Context, lines []order.Line) (order.Result, error) {
	args := m.Called(ctx, lines)
	return args.Get(0).(order.Result), args.Error(1)
}

func testProduct() repository.Product {
	return repository.Product{
		ID:       1,
		Name:     "P1",
		Price:    decimal.RequireFromString("10"),
		Quantity: 100,
	}
}
