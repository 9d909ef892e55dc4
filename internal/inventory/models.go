package inventory

import "time"

// Document is the entire persisted state: one JSON object holding both
// collections. Both slices are always non-nil after a store load, even when
// the underlying file is absent or lacks the keys.
type Document struct {
	Products []Product `json:"products"`
	Orders   []Order   `json:"orders"`
}

// Product is a catalog record. CreatedAt is an ISO-8601 UTC timestamp string
// so the on-disk format stays stable regardless of the host timezone.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"createdAt"`
}

// Order references products through its item list. Status is free-form text;
// new orders default to "NEW".
type Order struct {
	ID        string      `json:"id"`
	Customer  string      `json:"customer"`
	Items     []OrderItem `json:"items"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"createdAt"`
}

// OrderItem is one line of an order. ProductID must reference an existing
// product at the moment the item is accepted; a later product deletion prunes
// the item instead of rejecting the deletion.
type OrderItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// NowISO returns the timestamp format used for createdAt fields.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.999999") + "Z"
}

// IndexProducts maps product id to its position in the slice. Records with an
// empty id are skipped; duplicate ids resolve last-write-wins. Positions let
// callers mutate a working copy and write it back into the slice explicitly.
func IndexProducts(products []Product) map[string]int {
	idx := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			continue
		}
		idx[p.ID] = i
	}
	return idx
}

// IndexOrders maps order id to slice position, with the same skip and
// last-write-wins rules as IndexProducts.
func IndexOrders(orders []Order) map[string]int {
	idx := make(map[string]int, len(orders))
	for i, o := range orders {
		if o.ID == "" {
			continue
		}
		idx[o.ID] = i
	}
	return idx
}
