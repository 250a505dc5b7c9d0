package events

import (
	"github.com/shopspring/decimal"
)

const (
	ProductExchangeName      = "products.events"
	ProductCreatedRoutingKey = "product.created"
	ProductUpdatedRoutingKey = "product.updated"
	ProductCreatedEventName  = ProductExchangeName + ":" + ProductCreatedRoutingKey
	ProductUpdatedEventName  = ProductExchangeName + ":" + ProductUpdatedRoutingKey

	OrderExchangeName     = "orders.events"
	OrderPlacedRoutingKey = "order.placed"
	OrderPlacedEventName  = OrderExchangeName + ":" + OrderPlacedRoutingKey
)

type OutboxEvent struct {
	ID          string `json:"id"`
	AggregateID string `json:"aggregateId"`
	EventName   string `json:"eventName"`
	Payload     []byte `json:"payload"`
	Status      string `json:"status"`
}

type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

type OrderItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type OrderPlacedEvent struct {
	OrderID string          `json:"orderId"`
	Items   []OrderItem     `json:"items"`
	Total   decimal.Decimal `json:"total"`
}
