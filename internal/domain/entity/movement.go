package entity

// Estados de los documentos origen que cuentan para el libro y la demanda.
const (
	SaleStatusCompleted         = "completed"
	PurchaseOrderStatusReceived = "received"
)
