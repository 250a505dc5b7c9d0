package repository

import "github.com/shopspring/decimal"

// ProductChanges carries the fields of a partial update; nil means unchanged.
type ProductChanges struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int32
}

func (c ProductChanges) IsEmpty() bool {
	return c.Name == nil && c.Price == nil && c.Quantity == nil
}
