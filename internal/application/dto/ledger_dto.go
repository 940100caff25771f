package dto

// LedgerDeltaItem delta firmado para un producto. Negativo = reversión de una venta/compra.
type LedgerDeltaItem struct {
	ProductID      int64 `json:"productId"`
	SoldDelta      int   `json:"soldDelta"`
	PurchasedDelta int   `json:"purchasedDelta"`
}

// ApplyDeltasRequest body para POST /api/stock-ledger/deltas.
type ApplyDeltasRequest struct {
	Date  string            `json:"date"` // YYYY-MM-DD
	Items []LedgerDeltaItem `json:"items"`
}

// LedgerEntryDTO fila del libro diario. Los nombres de campo son contrato con otras herramientas.
type LedgerEntryDTO struct {
	ProductID    int64  `json:"productId"`
	Date         string `json:"date"`
	OpeningStock int    `json:"openingStock"`
	PurchasedQty int    `json:"purchasedQty"`
	SoldQty      int    `json:"soldQty"`
	ClosingStock int    `json:"closingStock"`
}

// LedgerQuery parámetros de GET /api/stock-ledger.
type LedgerQuery struct {
	StartDate string `query:"start_date"` // por defecto hace 30 días
	EndDate   string `query:"end_date"`   // por defecto hoy
	ProductID int64  `query:"product_id"` // 0 = todos
}

// ReseedRequest body para POST /api/stock-ledger/reseed.
type ReseedRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ReseedResultDTO resultado de la reconstrucción de un rango.
type ReseedResultDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Days      int    `json:"days"`
	Deleted   int64  `json:"deleted"`
	Created   int    `json:"created"`
}
