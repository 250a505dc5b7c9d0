package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Line is one {product, quantity} pair of an order request.
type Line struct {
	Product  string
	Quantity int32
}

// ParseLines decodes and checks the whole batch before any stock is touched.
func ParseLines(r io.Reader) ([]Line, error) {
	var raw []map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOrder, err)
	}

	lines := make([]Line, 0, len(raw))
	for _, item := range raw {
		line, err := parseLine(item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseLine(item map[string]json.RawMessage) (Line, error) {
	if item == nil {
		return Line{}, ErrMalformedOrder
	}

	rawProduct := bytes.TrimSpace(item["product"])
	var product string
	if len(rawProduct) == 0 || bytes.Equal(rawProduct, []byte("null")) {
		return Line{}, ErrProductRequired
	}
	if err := json.Unmarshal(rawProduct, &product); err != nil {
		return Line{}, ErrProductRequired
	}

	quantity, err := parseQuantity(item["quantity"])
	if err != nil {
		return Line{}, &MalformedQuantityError{
			Product: product,
			Raw:     quantityText(item["quantity"]),
			Err:     err,
		}
	}
	if quantity < 0 {
		return Line{}, &InvalidQuantityError{Product: product, Quantity: quantity}
	}

	return Line{Product: product, Quantity: int32(quantity)}, nil
}

// parseQuantity accepts a JSON integer or a string holding one.
func parseQuantity(v json.RawMessage) (int64, error) {
	if v == nil {
		return 0, errors.New("quantity is required")
	}
	return strconv.ParseInt(quantityText(v), 10, 32)
}

func quantityText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(v))
}
