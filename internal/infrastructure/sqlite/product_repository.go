package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/bev-flow/internal/domain"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productSupplierColumns = []string{
	"p.id", "p.name", "p.sku", "p.category", "p.price", "p.cost",
	"p.current_stock", "p.safety_stock", "p.min_stock_level", "p.reorder_quantity",
	"p.supplier_id", "s.name", "s.lead_time_days",
}

// ProductRepo implementación de ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetCurrentStock devuelve el stock actual o domain.ErrNotFound.
func (r *ProductRepo) GetCurrentStock(ctx context.Context, id int64) (int, error) {
	query, args, err := builder.Select("current_stock").From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var stock int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("get current stock: %w", err)
	}
	return stock, nil
}

// AdjustCurrentStock suma delta a current_stock sin bajar de cero.
func (r *ProductRepo) AdjustCurrentStock(ctx context.Context, id int64, delta int) error {
	query, args, err := builder.Update("products").
		Set("current_stock", sq.Expr("MAX(0, current_stock + ?)", delta)).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("adjust current stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GetWithSupplier obtiene un producto con su proveedor o nil si no existe.
func (r *ProductRepo) GetWithSupplier(ctx context.Context, id int64) (*repository.ProductWithSupplier, error) {
	query, args, err := productsWithSupplier().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	row, err := scanProductWithSupplier(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row, nil
}

// ListWithSupplier lista todos los productos con el lead time de su proveedor.
func (r *ProductRepo) ListWithSupplier(ctx context.Context) ([]repository.ProductWithSupplier, error) {
	query, args, err := productsWithSupplier().OrderBy("p.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductWithSupplier
	for rows.Next() {
		row, err := scanProductWithSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *row)
	}
	return list, rows.Err()
}

// ListIDs devuelve los IDs de todos los productos en orden.
func (r *ProductRepo) ListIDs(ctx context.Context) ([]int64, error) {
	query, args, err := builder.Select("id").From("products").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func productsWithSupplier() sq.SelectBuilder {
	return builder.Select(productSupplierColumns...).
		From("products p").
		LeftJoin("suppliers s ON s.id = p.supplier_id")
}

func scanProductWithSupplier(s rowScanner) (*repository.ProductWithSupplier, error) {
	var (
		out          repository.ProductWithSupplier
		supplierID   sql.NullInt64
		supplierName sql.NullString
		leadTime     sql.NullInt64
	)
	p := &out.Product
	if err := s.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Cost,
		&p.CurrentStock, &p.SafetyStock, &p.MinStockLevel, &p.ReorderQuantity,
		&supplierID, &supplierName, &leadTime,
	); err != nil {
		return nil, err
	}
	if supplierID.Valid {
		id := supplierID.Int64
		p.SupplierID = &id
	}
	if supplierName.Valid {
		name := supplierName.String
		out.SupplierName = &name
	}
	if leadTime.Valid {
		lt := int(leadTime.Int64)
		out.LeadTimeDays = &lt
	}
	return &out, nil
}
