package dto

import "github.com/shopspring/decimal"

// ReorderAnalyticsDTO métricas de reposición de un producto con sus datos descriptivos.
type ReorderAnalyticsDTO struct {
	ProductID       int64           `json:"productId"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Category        string          `json:"category"`
	CurrentStock    int             `json:"currentStock"`
	MinStockLevel   int             `json:"minStockLevel"`
	ReorderQuantity int             `json:"reorderQuantity"`
	SupplierID      *int64          `json:"supplierId"`
	SupplierName    string          `json:"supplierName,omitempty"`
	UnitCost        decimal.Decimal `json:"unitCost"`

	LeadTimeDays         int             `json:"leadTimeDays"`
	SampleDays           int             `json:"sampleDays"` // días con ventas usados como muestra
	AvgDailyDemand       float64         `json:"avgDailyDemand"`
	StdDevDailyDemand    float64         `json:"stdDevDailyDemand"`
	SafetyStock          int             `json:"safetyStock"`
	DemandDuringLeadTime int             `json:"demandDuringLeadTime"`
	ReorderPoint         int             `json:"reorderPoint"`
	AnnualDemand         int             `json:"annualDemand"`
	EOQ                  int             `json:"eoq"`
	EstimatedOrderCost   decimal.Decimal `json:"estimatedOrderCost"` // EOQ * UnitCost
	NeedsReorder         bool            `json:"needsReorder"`       // currentStock <= reorderPoint
}

// ReorderConstantsDTO parámetros fijos del modelo.
type ReorderConstantsDTO struct {
	ServiceLevel          float64 `json:"serviceLevel"`
	ZScore                float64 `json:"zScore"`
	OrderingCost          float64 `json:"orderingCost"`
	HoldingCost           float64 `json:"holdingCost"`
	DefaultLeadTimeDays   int     `json:"defaultLeadTimeDays"`
	DefaultAvgDailyDemand float64 `json:"defaultAvgDailyDemand"`
	DemandSource          string  `json:"demandSource"` // ledger|sales
	LookbackDays          int     `json:"lookbackDays"` // 0 = todo el historial
}

// ReorderSummaryDTO agregados sobre todos los productos.
type ReorderSummaryDTO struct {
	TotalProducts   int     `json:"totalProducts"`
	NeedsReorder    int     `json:"needsReorder"`
	Healthy         int     `json:"healthy"`
	AvgEOQ          float64 `json:"avgEoq"`
	AvgSafetyStock  float64 `json:"avgSafetyStock"`
	AvgReorderPoint float64 `json:"avgReorderPoint"`
}

// ReorderAnalyticsReport respuesta de GET /api/analytics/reorder.
type ReorderAnalyticsReport struct {
	Data      []ReorderAnalyticsDTO `json:"data"`
	Constants ReorderConstantsDTO   `json:"constants"`
	Summary   ReorderSummaryDTO     `json:"summary"`
}
