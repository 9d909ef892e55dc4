package service

import (
	"github.com/stockroom/stockroom/internal/inventory"
	"github.com/stockroom/stockroom/pkg/metrics"
)

// CreateProductInput carries the raw request fields for a product create.
// Price stays loosely typed until parseNumber validates it.
type CreateProductInput struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price interface{} `json:"price"`
}

// UpdateProductInput holds optional fields; nil means "leave unchanged".
type UpdateProductInput struct {
	Name  *string     `json:"name"`
	Price interface{} `json:"price"`
}

func (s *Service) ListProducts() ([]inventory.Product, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Products, nil
}

func (s *Service) GetProduct(id string) (*inventory.Product, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	pos, ok := inventory.IndexProducts(doc.Products)[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := doc.Products[pos]
	return &p, nil
}

func (s *Service) CreateProduct(in CreateProductInput) (*inventory.Product, error) {
	if in.Name == "" {
		return nil, badRequestf("Field 'name' is required")
	}
	if in.Price == nil {
		return nil, badRequestf("Field 'price' is required")
	}
	price, ok := parseNumber(in.Price)
	if !ok {
		return nil, badRequestf("Field 'price' must be a number")
	}

	var created inventory.Product
	err := s.store.Update(func(doc *inventory.Document) error {
		index := inventory.IndexProducts(doc.Products)
		id := in.ID
		if id == "" {
			id = newID("p")
		}
		if _, exists := index[id]; exists {
			return badRequestf("Product id already exists")
		}
		created = inventory.Product{
			ID:        id,
			Name:      in.Name,
			Price:     price,
			CreatedAt: inventory.NowISO(),
		}
		doc.Products = append(doc.Products, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.StoreMutations.WithLabelValues("products", "create").Inc()
	return &created, nil
}

func (s *Service) UpdateProduct(id string, in UpdateProductInput) (*inventory.Product, error) {
	var updated inventory.Product
	err := s.store.Update(func(doc *inventory.Document) error {
		pos, ok := inventory.IndexProducts(doc.Products)[id]
		if !ok {
			return ErrProductNotFound
		}
		p := doc.Products[pos]
		if in.Name != nil {
			if *in.Name == "" {
				return badRequestf("Field 'name' must be a non-empty string")
			}
			p.Name = *in.Name
		}
		if in.Price != nil {
			price, ok := parseNumber(in.Price)
			if !ok {
				return badRequestf("Field 'price' must be a number")
			}
			p.Price = price
		}
		doc.Products[pos] = p
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.StoreMutations.WithLabelValues("products", "update").Inc()
	return &updated, nil
}

// DeleteProduct removes the product and runs the cascade: every order item
// referencing the deleted id is pruned, in the same mutation cycle, before
// the document is persisted. Orders may legitimately end up with zero items.
func (s *Service) DeleteProduct(id string) error {
	err := s.store.Update(func(doc *inventory.Document) error {
		kept := make([]inventory.Product, 0, len(doc.Products))
		for _, p := range doc.Products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(doc.Products) {
			return ErrProductNotFound
		}
		doc.Products = kept
		pruneProductReferences(doc, id)
		return nil
	})
	if err != nil {
		return err
	}
	metrics.StoreMutations.WithLabelValues("products", "delete").Inc()
	return nil
}

// pruneProductReferences is the integrity-maintenance step of a product
// deletion: it drops order items pointing at the removed product across all
// orders. History is not preserved.
func pruneProductReferences(doc *inventory.Document, productID string) {
	for i := range doc.Orders {
		kept := make([]inventory.OrderItem, 0, len(doc.Orders[i].Items))
		for _, it := range doc.Orders[i].Items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		doc.Orders[i].Items = kept
	}
}
