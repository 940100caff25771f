package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
)

// MovementRepository consultas de solo lectura sobre ventas y recepciones de órdenes de compra,
// agregadas por producto y día. start/end inclusivos; valor cero = sin límite.
type MovementRepository interface {
	// DailySales suma las líneas de ventas completadas por producto y día.
	DailySales(ctx context.Context, start, end time.Time) ([]entity.DemandObservation, error)
	// DailyReceipts suma las cantidades recibidas de órdenes de compra por producto y día.
	DailyReceipts(ctx context.Context, start, end time.Time) ([]entity.DemandObservation, error)
}
