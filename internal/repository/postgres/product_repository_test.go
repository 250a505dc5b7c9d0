package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sonuudigital/nimblestore/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPartialUpdate(t *testing.T) {
	name := "Renamed"
	price := decimal.RequireFromString("12.50")
	quantity := int32(7)

	t.Run("All Fields", func(t *testing.T) {
		query, args, err := buildPartialUpdate(3, repository.ProductChanges{
			Name:     &name,
			Price:    &price,
			Quantity: &quantity,
		})

		require.NoError(t, err)
		assert.Equal(t,
			"UPDATE products SET name = $1, price = $2, quantity = $3, updated_at = NOW() WHERE id = $4 RETURNING "+productColumns,
			query)
		assert.Equal(t, []any{name, price, quantity, int64(3)}, args)
	})

	t.Run("Single Field", func(t *testing.T) {
		query, args, err := buildPartialUpdate(9, repository.ProductChanges{Quantity: &quantity})

		require.NoError(t, err)
		assert.Equal(t,
			"UPDATE products SET quantity = $1, updated_at = NOW() WHERE id = $2 RETURNING "+productColumns,
			query)
		assert.Equal(t, []any{quantity, int64(9)}, args)
	})
}
