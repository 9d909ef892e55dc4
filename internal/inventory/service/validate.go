package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/stockroom/stockroom/internal/inventory"
)

// parseNumber converts a loosely-typed JSON value into a float64. JSON
// numbers arrive as float64 from the decoder; numeric strings such as "12.5"
// are accepted too, matching the wire behavior clients already rely on.
func parseNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// parseQuantity converts a loosely-typed JSON value into an int. Fractional
// numbers are rejected rather than truncated.
func parseQuantity(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.Trunc(n) != n {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// normalizeItems validates a full item list against the current product index
// and returns the canonical items. Any bad entry rejects the whole batch, so
// an order never ends up with a partially accepted item list.
func normalizeItems(items []OrderItemInput, products map[string]int) ([]inventory.OrderItem, error) {
	normalized := make([]inventory.OrderItem, 0, len(items))
	for _, it := range items {
		productID := strings.TrimSpace(it.ProductID)
		if productID == "" {
			return nil, badRequestf("Each item must include productId")
		}
		if _, ok := products[productID]; !ok {
			return nil, badRequestf("productId does not exist: %s", productID)
		}
		qty, ok := parseQuantity(it.Qty)
		if !ok {
			return nil, badRequestf("qty must be an integer")
		}
		if qty <= 0 {
			return nil, badRequestf("qty must be a positive integer")
		}
		normalized = append(normalized, inventory.OrderItem{ProductID: productID, Qty: qty})
	}
	return normalized, nil
}
