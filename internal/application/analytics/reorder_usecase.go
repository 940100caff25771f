package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/domain"
	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/reorder"
	"github.com/jhoicas/bev-flow/internal/domain/repository"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

// Fuentes de demanda. Se usa una sola por cálculo; nunca se mezclan.
const (
	DemandSourceLedger = "ledger" // sold_qty del libro diario (conciliado)
	DemandSourceSales  = "sales"  // líneas de ventas completadas agrupadas por día
)

// ReorderOptions configuración del motor de reposición.
type ReorderOptions struct {
	DemandSource string // ledger (por defecto) | sales
	LookbackDays int    // 0 = todo el historial
}

// ReorderAnalyticsUseCase calcula stock de seguridad, punto de reorden y EOQ por producto.
// Lectura pura y sin caché: cada llamada consulta el almacenamiento.
type ReorderAnalyticsUseCase struct {
	productRepo  repository.ProductRepository
	ledgerRepo   repository.LedgerRepository
	movementRepo repository.MovementRepository
	opts         ReorderOptions
	now          func() time.Time
	log          zerolog.Logger
}

// NewReorderAnalyticsUseCase construye el caso de uso. Una fuente desconocida vuelve a "ledger".
func NewReorderAnalyticsUseCase(
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
	movementRepo repository.MovementRepository,
	opts ReorderOptions,
	log zerolog.Logger,
) *ReorderAnalyticsUseCase {
	if opts.DemandSource != DemandSourceSales {
		opts.DemandSource = DemandSourceLedger
	}
	if opts.LookbackDays < 0 {
		opts.LookbackDays = 0
	}
	return &ReorderAnalyticsUseCase{
		productRepo:  productRepo,
		ledgerRepo:   ledgerRepo,
		movementRepo: movementRepo,
		opts:         opts,
		now:          time.Now,
		log:          log.With().Str("component", "reorder_analytics").Logger(),
	}
}

// ComputeForAllProducts devuelve las métricas de todos los productos, las constantes del modelo y el resumen.
// Orden: primero los que necesitan reorden, luego mayor déficit (ROP - stock), luego productId.
func (uc *ReorderAnalyticsUseCase) ComputeForAllProducts(ctx context.Context) (*dto.ReorderAnalyticsReport, error) {
	// Productos y demanda son consultas independientes
	type productsResult struct {
		rows []repository.ProductWithSupplier
		err  error
	}
	type demandResult struct {
		obs []entity.DemandObservation
		err error
	}
	prodChan := make(chan productsResult, 1)
	demChan := make(chan demandResult, 1)

	go func() {
		rows, err := uc.productRepo.ListWithSupplier(ctx)
		prodChan <- productsResult{rows, err}
	}()
	go func() {
		obs, err := uc.loadDemand(ctx, 0)
		demChan <- demandResult{obs, err}
	}()

	prodRes := <-prodChan
	demRes := <-demChan
	if prodRes.err != nil {
		return nil, fmt.Errorf("reorder analytics: productos: %w", prodRes.err)
	}
	if demRes.err != nil {
		return nil, fmt.Errorf("reorder analytics: demanda: %w", demRes.err)
	}

	series := reorder.DemandSeries(demRes.obs)
	data := make([]dto.ReorderAnalyticsDTO, 0, len(prodRes.rows))
	results := make([]reorder.Result, 0, len(prodRes.rows))
	for _, row := range prodRes.rows {
		r := computeRow(row, series[row.Product.ID])
		results = append(results, r)
		data = append(data, toDTO(row, r))
	}

	sort.SliceStable(data, func(i, j int) bool {
		a, b := data[i], data[j]
		if a.NeedsReorder != b.NeedsReorder {
			return a.NeedsReorder
		}
		defA := a.ReorderPoint - a.CurrentStock
		defB := b.ReorderPoint - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.ProductID < b.ProductID
	})

	summary := reorder.Summarize(results)
	uc.log.Debug().
		Int("products", summary.TotalProducts).
		Int("needs_reorder", summary.NeedsReorder).
		Str("demand_source", uc.opts.DemandSource).
		Msg("análisis de reposición calculado")

	return &dto.ReorderAnalyticsReport{
		Data:      data,
		Constants: uc.constants(),
		Summary: dto.ReorderSummaryDTO{
			TotalProducts:   summary.TotalProducts,
			NeedsReorder:    summary.NeedsReorder,
			Healthy:         summary.Healthy,
			AvgEOQ:          summary.AvgEOQ,
			AvgSafetyStock:  summary.AvgSafetyStock,
			AvgReorderPoint: summary.AvgReorderPoint,
		},
	}, nil
}

// ComputeForProduct calcula las métricas de un solo producto.
func (uc *ReorderAnalyticsUseCase) ComputeForProduct(ctx context.Context, productID int64) (*dto.ReorderAnalyticsDTO, error) {
	row, err := uc.productRepo.GetWithSupplier(ctx, productID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	obs, err := uc.loadDemand(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("reorder analytics: demanda: %w", err)
	}
	r := computeRow(*row, reorder.DemandSeries(obs)[productID])
	out := toDTO(*row, r)
	return &out, nil
}

// loadDemand lee la demanda desde la fuente configurada. productID 0 = todos.
func (uc *ReorderAnalyticsUseCase) loadDemand(ctx context.Context, productID int64) ([]entity.DemandObservation, error) {
	var since time.Time
	if uc.opts.LookbackDays > 0 {
		since = stockledger.Day(uc.now()).AddDate(0, 0, -uc.opts.LookbackDays)
	}
	if uc.opts.DemandSource == DemandSourceLedger {
		return uc.ledgerRepo.ListDemand(ctx, since, productID)
	}

	obs, err := uc.movementRepo.DailySales(ctx, since, time.Time{})
	if err != nil || productID == 0 {
		return obs, err
	}
	filtered := obs[:0]
	for _, o := range obs {
		if o.ProductID == productID {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (uc *ReorderAnalyticsUseCase) constants() dto.ReorderConstantsDTO {
	return dto.ReorderConstantsDTO{
		ServiceLevel:          reorder.ServiceLevel,
		ZScore:                reorder.ZScore,
		OrderingCost:          reorder.OrderingCost,
		HoldingCost:           reorder.HoldingCost,
		DefaultLeadTimeDays:   reorder.DefaultLeadTimeDays,
		DefaultAvgDailyDemand: reorder.DefaultAvgDailyDemand,
		DemandSource:          uc.opts.DemandSource,
		LookbackDays:          uc.opts.LookbackDays,
	}
}

func computeRow(row repository.ProductWithSupplier, samples []int) reorder.Result {
	lead := reorder.DefaultLeadTimeDays
	if row.LeadTimeDays != nil {
		lead = *row.LeadTimeDays
	}
	return reorder.Compute(row.Product.CurrentStock, lead, samples)
}

func toDTO(row repository.ProductWithSupplier, r reorder.Result) dto.ReorderAnalyticsDTO {
	p := row.Product
	out := dto.ReorderAnalyticsDTO{
		ProductID:            p.ID,
		Name:                 p.Name,
		SKU:                  p.SKU,
		Category:             p.Category,
		CurrentStock:         p.CurrentStock,
		MinStockLevel:        p.MinStockLevel,
		ReorderQuantity:      p.ReorderQuantity,
		SupplierID:           p.SupplierID,
		UnitCost:             p.Cost,
		LeadTimeDays:         r.LeadTimeDays,
		SampleDays:           r.SampleDays,
		AvgDailyDemand:       round2(r.AvgDailyDemand),
		StdDevDailyDemand:    round2(r.StdDevDailyDemand),
		SafetyStock:          r.SafetyStock,
		DemandDuringLeadTime: r.DemandDuringLeadTime,
		ReorderPoint:         r.ReorderPoint,
		AnnualDemand:         r.AnnualDemand,
		EOQ:                  r.EOQ,
		EstimatedOrderCost:   p.Cost.Mul(decimal.NewFromInt(int64(r.EOQ))).Round(2),
		NeedsReorder:         r.NeedsReorder,
	}
	if row.SupplierName != nil {
		out.SupplierName = *row.SupplierName
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
