package inventory

import (
	"github.com/jhoicas/bev-flow/internal/application/dto"
	"github.com/jhoicas/bev-flow/internal/domain/entity"
	"github.com/jhoicas/bev-flow/internal/domain/stockledger"
)

// ToLedgerEntryDTO convierte una fila del libro a su forma de contrato.
func ToLedgerEntryDTO(e *entity.StockLedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		ProductID:    e.ProductID,
		Date:         stockledger.FormatDate(e.Date),
		OpeningStock: e.OpeningStock,
		PurchasedQty: e.PurchasedQty,
		SoldQty:      e.SoldQty,
		ClosingStock: e.ClosingStock,
	}
}
