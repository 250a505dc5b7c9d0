package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

const (
	fieldName     = "name"
	fieldPrice    = "price"
	fieldQuantity = "quantity"

	msgNotNull        = "This field may not be null."
	msgInvalidString  = "Not a valid string."
	msgInvalidNumber  = "A valid number is required."
	msgInvalidInteger = "A valid integer is required."
	msgExpectedObject = "Invalid data. Expected a dictionary."
)

// ProductInput is the writable part of a product. Nil fields were absent from the request.
type ProductInput struct {
	Name     *string          `json:"name" validate:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,decimal_gte=0,max_digits=10,decimal_places=2,whole_digits=8"`
	Quantity *int64           `json:"quantity" validate:"omitempty,min=0,max=2147483647"`
}

// DecodeProductInput reads a JSON object field by field so every malformed
// field is reported, not only the first one. Unknown keys are ignored.
func DecodeProductInput(r io.Reader) (ProductInput, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil || raw == nil {
		verr := &ValidationError{}
		verr.add(NonFieldErrorsKey, msgExpectedObject)
		return ProductInput{}, verr
	}

	var input ProductInput
	verr := &ValidationError{}

	if v, ok := raw[fieldName]; ok {
		name, msg := decodeString(v)
		if msg != "" {
			verr.add(fieldName, msg)
		} else {
			input.Name = &name
		}
	}

	if v, ok := raw[fieldPrice]; ok {
		price, msg := decodeDecimal(v)
		if msg != "" {
			verr.add(fieldPrice, msg)
		} else {
			input.Price = &price
		}
	}

	if v, ok := raw[fieldQuantity]; ok {
		quantity, msg := decodeInteger(v)
		if msg != "" {
			verr.add(fieldQuantity, msg)
		} else {
			input.Quantity = &quantity
		}
	}

	if err := verr.orNil(); err != nil {
		return ProductInput{}, err
	}
	return input, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func decodeString(v json.RawMessage) (string, string) {
	if isNull(v) {
		return "", msgNotNull
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", msgInvalidString
	}
	return s, ""
}

// decodeDecimal accepts a JSON number or a numeric string.
func decodeDecimal(v json.RawMessage) (decimal.Decimal, string) {
	if isNull(v) {
		return decimal.Decimal{}, msgNotNull
	}

	text := string(bytes.TrimSpace(v))
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		text = s
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, msgInvalidNumber
	}
	return d, ""
}

// decodeInteger accepts a JSON integer or a string holding one.
func decodeInteger(v json.RawMessage) (int64, string) {
	if isNull(v) {
		return 0, msgNotNull
	}

	text := string(bytes.TrimSpace(v))
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		text = s
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, msgInvalidInteger
	}
	return n, ""
}

// createParams fills absent fields with the column defaults.
func (in ProductInput) createParams() repository.CreateProductParams {
	params := repository.CreateProductParams{Price: decimal.Zero}
	if in.Name != nil {
		params.Name = *in.Name
	}
	if in.Price != nil {
		params.Price = *in.Price
	}
	if in.Quantity != nil {
		params.Quantity = int32(*in.Quantity)
	}
	return params
}

func (in ProductInput) updateParams(id int64) repository.UpdateProductParams {
	create := in.createParams()
	return repository.UpdateProductParams{
		ID:       id,
		Name:     create.Name,
		Price:    create.Price,
		Quantity: create.Quantity,
	}
}

func (in ProductInput) changes() repository.ProductChanges {
	var changes repository.ProductChanges
	changes.Name = in.Name
	changes.Price = in.Price
	if in.Quantity != nil {
		q := int32(*in.Quantity)
		changes.Quantity = &q
	}
	return changes
}
