package order_test

import (
	"strings"
	"testing"

	"github.com/sonuudigital/nimblestore/internal/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	t.Run("Valid Batch", func(t *testing.T) {
		lines, err := order.ParseLines(strings.NewReader(`[{"product":"P1","quantity":2},{"product":"P2","quantity":"3"}]`))

		require.NoError(t, err)
		assert.Equal(t, []order.Line{{Product: "P1", Quantity: 2}, {Product: "P2", Quantity: 3}}, lines)
	})

	t.Run("Empty Batch", func(t *testing.T) {
		lines, err := order.ParseLines(strings.NewReader(`[]`))

		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("Not A List", func(t *testing.T) {
		for _, body := range []string{`{"product":"P1"}`, `"P1"`, `[1]`, `oops`} {
			_, err := order.ParseLines(strings.NewReader(body))
			assert.ErrorIs(t, err, order.ErrMalformedOrder, body)
		}
	})

	t.Run("Missing Product", func(t *testing.T) {
		for _, body := range []string{`[{"quantity":1}]`, `[{"product":null,"quantity":1}]`, `[{"product":7,"quantity":1}]`} {
			_, err := order.ParseLines(strings.NewReader(body))
			assert.ErrorIs(t, err, order.ErrProductRequired, body)
		}
	})

	t.Run("Malformed Quantity Anywhere In Batch", func(t *testing.T) {
		_, err := order.ParseLines(strings.NewReader(`[{"product":"P1","quantity":1},{"product":"P2","quantity":"abc"}]`))

		var qerr *order.MalformedQuantityError
		require.ErrorAs(t, err, &qerr)
		assert.Equal(t, "P2", qerr.Product)
		assert.Equal(t, "abc", qerr.Raw)
		assert.Contains(t, err.Error(), `invalid quantity "abc" for product "P2"`)
	})

	t.Run("Fractional And Missing Quantity", func(t *testing.T) {
		for _, body := range []string{`[{"product":"P1","quantity":2.5}]`, `[{"product":"P1"}]`, `[{"product":"P1","quantity":null}]`} {
			_, err := order.ParseLines(strings.NewReader(body))

			var qerr *order.MalformedQuantityError
			assert.ErrorAs(t, err, &qerr, body)
		}
	})

	t.Run("Negative Quantity", func(t *testing.T) {
		for _, body := range []string{`[{"product":"P1","quantity":-4}]`, `[{"product":"P1","quantity":"-1"}]`} {
			_, err := order.ParseLines(strings.NewReader(body))

			var qerr *order.InvalidQuantityError
			assert.ErrorAs(t, err, &qerr, body)
		}
	})

	t.Run("Zero Quantity Accepted", func(t *testing.T) {
		lines, err := order.ParseLines(strings.NewReader(`[{"product":"P1","quantity":0}]`))

		require.NoError(t, err)
		assert.Equal(t, []order.Line{{Product: "P1", Quantity: 0}}, lines)
	})
}
