package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bev-flow/internal/domain"
	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productSupplierRow fila plana de products LEFT JOIN suppliers.
type productSupplierRow struct {
	ID              int64           `db:"id"`
	Name            string          `db:"name"`
	SKU             string          `db:"sku"`
	Category        string          `db:"category"`
	Price           decimal.Decimal `db:"price"`
	Cost            decimal.Decimal `db:"cost"`
	CurrentStock    int             `db:"current_stock"`
	SafetyStock     int             `db:"safety_stock"`
	MinStockLevel   int             `db:"min_stock_level"`
	ReorderQuantity int             `db:"reorder_quantity"`
	SupplierID      *int64          `db:"supplier_id"`
	SupplierName    *string         `db:"supplier_name"`
	LeadTimeDays    *int            `db:"lead_time_days"`
}

func (row productSupplierRow) toRepository() repository.ProductWithSupplier {
	return repository.ProductWithSupplier{
		Product: entity.Product{
			ID:              row.ID,
			Name:            row.Name,
			SKU:             row.SKU,
			Category:        row.Category,
			Price:           row.Price,
			Cost:            row.Cost,
			CurrentStock:    row.CurrentStock,
			SafetyStock:     row.SafetyStock,
			MinStockLevel:   row.MinStockLevel,
			ReorderQuantity: row.ReorderQuantity,
			SupplierID:      row.SupplierID,
		},
		SupplierName: row.SupplierName,
		LeadTimeDays: row.LeadTimeDays,
	}
}

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q       Querier
	builder sq.StatementBuilderType
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{
		q:       q,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetCurrentStock devuelve el stock actual o domain.ErrNotFound.
func (r *ProductRepo) GetCurrentStock(ctx context.Context, id int64) (int, error) {
	query, args, err := r.builder.Select("current_stock").From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var stock int
	if err := pgxscan.Get(ctx, r.q, &stock, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return 0, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("get current stock: %w", err)
	}
	return stock, nil
}

// AdjustCurrentStock suma delta a current_stock sin bajar de cero (una sola sentencia, sin carrera).
func (r *ProductRepo) AdjustCurrentStock(ctx context.Context, id int64, delta int) error {
	query, args, err := r.builder.Update("products").
		Set("current_stock", sq.Expr("GREATEST(0, current_stock + ?)", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("adjust current stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GetWithSupplier obtiene un producto con su proveedor o nil si no existe.
func (r *ProductRepo) GetWithSupplier(ctx context.Context, id int64) (*repository.ProductWithSupplier, error) {
	query, args, err := r.productsWithSupplier().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row productSupplierRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	out := row.toRepository()
	return &out, nil
}

// ListWithSupplier lista todos los productos con el lead time de su proveedor.
func (r *ProductRepo) ListWithSupplier(ctx context.Context) ([]repository.ProductWithSupplier, error) {
	query, args, err := r.productsWithSupplier().OrderBy("p.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []productSupplierRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]repository.ProductWithSupplier, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toRepository())
	}
	return list, nil
}

// ListIDs devuelve los IDs de todos los productos en orden.
func (r *ProductRepo) ListIDs(ctx context.Context) ([]int64, error) {
	query, args, err := r.builder.Select("id").From("products").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var ids []int64
	if err := pgxscan.Select(ctx, r.q, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	return ids, nil
}

func (r *ProductRepo) productsWithSupplier() sq.SelectBuilder {
	return r.builder.Select(
		"p.id", "p.name", "p.sku", "p.category", "p.price", "p.cost",
		"p.current_stock", "p.safety_stock", "p.min_stock_level", "p.reorder_quantity",
		"p.supplier_id", "s.name AS supplier_name", "s.lead_time_days",
	).
		From("products p").
		LeftJoin("suppliers s ON s.id = p.supplier_id")
}
