package repository

import (
	"context"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
)

// ProductWithSupplier producto con datos de su proveedor (nil si no tiene).
type ProductWithSupplier struct {
	Product      entity.Product
	SupplierName *string
	LeadTimeDays *int
}

// ProductRepository puerto hacia el catálogo de productos. El núcleo solo toca current_stock.
type ProductRepository interface {
	// GetCurrentStock devuelve domain.ErrNotFound si el producto no existe.
	GetCurrentStock(ctx context.Context, id int64) (int, error)
	// AdjustCurrentStock aplica delta de forma atómica, sin bajar de cero.
	AdjustCurrentStock(ctx context.Context, id int64, delta int) error
	GetWithSupplier(ctx context.Context, id int64) (*ProductWithSupplier, error)
	ListWithSupplier(ctx context.Context) ([]ProductWithSupplier, error)
	ListIDs(ctx context.Context) ([]int64, error)
}
