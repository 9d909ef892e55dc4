package service

import (
	"github.com/stockroom/stockroom/internal/inventory"
	"github.com/stockroom/stockroom/pkg/metrics"
)

// OrderItemInput is one raw item from a create or update request. Qty stays
// loosely typed until parseQuantity validates it.
type OrderItemInput struct {
	ProductID string      `json:"productId"`
	Qty       interface{} `json:"qty"`
}

type CreateOrderInput struct {
	ID       string           `json:"id"`
	Customer string           `json:"customer"`
	Items    []OrderItemInput `json:"items"`
	Status   *string          `json:"status"`
}

// UpdateOrderInput holds optional fields; nil means "leave unchanged". A
// supplied item list fully replaces the current one after re-validation.
type UpdateOrderInput struct {
	Status   *string           `json:"status"`
	Customer *string           `json:"customer"`
	Items    *[]OrderItemInput `json:"items"`
}

func (s *Service) ListOrders() ([]inventory.Order, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Orders, nil
}

func (s *Service) GetOrder(id string) (*inventory.Order, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	pos, ok := inventory.IndexOrders(doc.Orders)[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o := doc.Orders[pos]
	return &o, nil
}

func (s *Service) CreateOrder(in CreateOrderInput) (*inventory.Order, error) {
	if in.Customer == "" {
		return nil, badRequestf("Field 'customer' is required")
	}
	if len(in.Items) == 0 {
		return nil, badRequestf("Field 'items' must be a non-empty list")
	}
	status := "NEW"
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}

	var created inventory.Order
	err := s.store.Update(func(doc *inventory.Document) error {
		items, err := normalizeItems(in.Items, inventory.IndexProducts(doc.Products))
		if err != nil {
			return err
		}
		id := in.ID
		if id == "" {
			id = newID("o")
		}
		if _, exists := inventory.IndexOrders(doc.Orders)[id]; exists {
			return badRequestf("Order id already exists")
		}
		created = inventory.Order{
			ID:        id,
			Customer:  in.Customer,
			Items:     items,
			Status:    status,
			CreatedAt: inventory.NowISO(),
		}
		doc.Orders = append(doc.Orders, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.StoreMutations.WithLabelValues("orders", "create").Inc()
	return &created, nil
}

func (s *Service) UpdateOrder(id string, in UpdateOrderInput) (*inventory.Order, error) {
	var updated inventory.Order
	err := s.store.Update(func(doc *inventory.Document) error {
		pos, ok := inventory.IndexOrders(doc.Orders)[id]
		if !ok {
			return ErrOrderNotFound
		}
		o := doc.Orders[pos]
		if in.Status != nil {
			o.Status = *in.Status
		}
		if in.Customer != nil {
			o.Customer = *in.Customer
		}
		if in.Items != nil {
			if len(*in.Items) == 0 {
				return badRequestf("items must be a non-empty list")
			}
			items, err := normalizeItems(*in.Items, inventory.IndexProducts(doc.Products))
			if err != nil {
				return err
			}
			o.Items = items
		}
		doc.Orders[pos] = o
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.StoreMutations.WithLabelValues("orders", "update").Inc()
	return &updated, nil
}

func (s *Service) DeleteOrder(id string) error {
	err := s.store.Update(func(doc *inventory.Document) error {
		kept := make([]inventory.Order, 0, len(doc.Orders))
		for _, o := range doc.Orders {
			if o.ID != id {
				kept = append(kept, o)
			}
		}
		if len(kept) == len(doc.Orders) {
			return ErrOrderNotFound
		}
		doc.Orders = kept
		return nil
	})
	if err != nil {
		return err
	}
	metrics.StoreMutations.WithLabelValues("orders", "delete").Inc()
	return nil
}
