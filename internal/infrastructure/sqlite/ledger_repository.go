package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerTable = "daily_stock_ledger"

var ledgerColumns = []string{"product_id", "date", "opening_stock", "purchased_qty", "sold_qty", "closing_stock"}

// LedgerRepo implementación de LedgerRepository sobre SQLite (usable con db o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar db o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Get obtiene la fila (producto, día) o nil si no existe.
func (r *LedgerRepo) Get(ctx context.Context, productID int64, date time.Time) (*entity.StockLedgerEntry, error) {
	query, args, err := builder.Select(ledgerColumns...).
		From(ledgerTable).
		Where(sq.Eq{"product_id": productID, "date": stockledger.FormatDate(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	e, err := scanLedgerEntry(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// GetForUpdate en SQLite equivale a Get: la transacción IMMEDIATE ya tiene el lock de escritura.
func (r *LedgerRepo) GetForUpdate(ctx context.Context, productID int64, date time.Time) (*entity.StockLedgerEntry, error) {
	return r.Get(ctx, productID, date)
}

// Upsert inserta o actualiza la fila (producto, día).
func (r *LedgerRepo) Upsert(ctx context.Context, e *entity.StockLedgerEntry) error {
	query, args, err := builder.Insert(ledgerTable).
		Columns(append(ledgerColumns, "updated_at")...).
		Values(e.ProductID, stockledger.FormatDate(e.Date), e.OpeningStock, e.PurchasedQty, e.SoldQty, e.ClosingStock,
			sq.Expr("CURRENT_TIMESTAMP")).
		Suffix(`ON CONFLICT (product_id, date) DO UPDATE SET
			opening_stock = excluded.opening_stock,
			purchased_qty = excluded.purchased_qty,
			sold_qty      = excluded.sold_qty,
			closing_stock = excluded.closing_stock,
			updated_at    = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError("upsert ledger entry", err)
	}
	return nil
}

// ListRange lista las filas del rango ordenadas por fecha y producto.
func (r *LedgerRepo) ListRange(ctx context.Context, f repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	qb := builder.Select(ledgerColumns...).
		From(ledgerTable).
		Where(sq.GtOrEq{"date": stockledger.FormatDate(f.Start)}).
		Where(sq.LtOrEq{"date": stockledger.FormatDate(f.End)}).
		OrderBy("date", "product_id")
	if f.ProductID > 0 {
		qb = qb.Where(sq.Eq{"product_id": f.ProductID})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockLedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// DeleteRange elimina las filas del rango inclusivo y devuelve cuántas borró.
func (r *LedgerRepo) DeleteRange(ctx context.Context, start, end time.Time) (int64, error) {
	query, args, err := builder.Delete(ledgerTable).
		Where(sq.GtOrEq{"date": stockledger.FormatDate(start)}).
		Where(sq.LtOrEq{"date": stockledger.FormatDate(end)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete ledger range: %w", err)
	}
	return res.RowsAffected()
}

// ListDemand devuelve sold_qty > 0 por producto y día.
func (r *LedgerRepo) ListDemand(ctx context.Context, since time.Time, productID int64) ([]entity.DemandObservation, error) {
	qb := builder.Select("product_id", "date", "sold_qty").
		From(ledgerTable).
		Where(sq.Gt{"sold_qty": 0}).
		OrderBy("product_id", "date")
	if !since.IsZero() {
		qb = qb.Where(sq.GtOrEq{"date": stockledger.FormatDate(since)})
	}
	if productID > 0 {
		qb = qb.Where(sq.Eq{"product_id": productID})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger demand: %w", err)
	}
	return scanObservations(rows)
}

func scanLedgerEntry(s rowScanner) (*entity.StockLedgerEntry, error) {
	var (
		e   entity.StockLedgerEntry
		day string
	)
	if err := s.Scan(&e.ProductID, &day, &e.OpeningStock, &e.PurchasedQty, &e.SoldQty, &e.ClosingStock); err != nil {
		return nil, err
	}
	d, err := stockledger.ParseDate(day)
	if err != nil {
		return nil, err
	}
	e.Date = d
	return &e, nil
}

// scanObservations lee filas (product_id, día "YYYY-MM-DD", cantidad) y cierra rows.
func scanObservations(rows *sql.Rows) ([]entity.DemandObservation, error) {
	defer rows.Close()
	var list []entity.DemandObservation
	for rows.Next() {
		var (
			o   entity.DemandObservation
			day string
		)
		if err := rows.Scan(&o.ProductID, &day, &o.Quantity); err != nil {
			return nil, fmt.Errorf("scan demand observation: %w", err)
		}
		d, err := stockledger.ParseDate(day)
		if err != nil {
			return nil, err
		}
		o.Date = d
		list = append(list, o)
	}
	return list, rows.Err()
}
