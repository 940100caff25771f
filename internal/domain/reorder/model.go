// Package reorder implementa el modelo estadístico de reposición: stock de seguridad con
// distribución normal, punto de reorden y cantidad económica de pedido (EOQ).
package reorder

import "math"

// Parámetros fijos del modelo (no configurables por llamada).
const (
	ServiceLevel          = 0.95
	ZScore                = 1.64 // z para nivel de servicio del 95%
	OrderingCost          = 100.83
	HoldingCost           = 600.00 // por unidad por año
	DefaultLeadTimeDays   = 2      // producto sin proveedor
	DefaultAvgDailyDemand = 10.0   // producto sin historial de ventas
	DaysPerYear           = 365
)

// Result métricas de reposición de un producto.
type Result struct {
	LeadTimeDays         int
	SampleDays           int
	AvgDailyDemand       float64
	StdDevDailyDemand    float64
	SafetyStock          int
	DemandDuringLeadTime int
	ReorderPoint         int
	AnnualDemand         int
	EOQ                  int
	NeedsReorder         bool
}

// Compute calcula stock de seguridad, punto de reorden y EOQ.
//
//	SS  = round(z * σ * √L)
//	ROP = round(μ * L) + SS
//	EOQ = round(√(2 * D * S / H)),  D = round(μ * 365)
//
// La varianza es poblacional. Sin muestras se usa μ = 10 y σ = 0.
func Compute(currentStock, leadTimeDays int, samples []int) Result {
	if leadTimeDays < 0 {
		leadTimeDays = 0
	}

	avg := DefaultAvgDailyDemand
	var variance float64
	if n := len(samples); n > 0 {
		var sum float64
		for _, d := range samples {
			sum += float64(d)
		}
		avg = sum / float64(n)
		for _, d := range samples {
			diff := float64(d) - avg
			variance += diff * diff
		}
		variance /= float64(n)
	}
	stdDev := math.Sqrt(variance)
	lead := float64(leadTimeDays)

	safety := int(math.Round(ZScore * stdDev * math.Sqrt(lead)))
	duringLead := int(math.Round(avg * lead))
	rop := duringLead + safety
	annual := int(math.Round(avg * DaysPerYear))
	eoq := int(math.Round(math.Sqrt((2 * float64(annual) * OrderingCost) / HoldingCost)))

	return Result{
		LeadTimeDays:         leadTimeDays,
		SampleDays:           len(samples),
		AvgDailyDemand:       avg,
		StdDevDailyDemand:    stdDev,
		SafetyStock:          safety,
		DemandDuringLeadTime: duringLead,
		ReorderPoint:         rop,
		AnnualDemand:         annual,
		EOQ:                  eoq,
		NeedsReorder:         currentStock <= rop,
	}
}
