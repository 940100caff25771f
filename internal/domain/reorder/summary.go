package reorder

import "math"

// Summary agregados del reporte de reposición.
type Summary struct {
	TotalProducts   int
	NeedsReorder    int
	Healthy         int
	AvgEOQ          float64
	AvgSafetyStock  float64
	AvgReorderPoint float64
}

// Summarize reduce los resultados por producto. Los promedios se redondean a 2 decimales.
func Summarize(results []Result) Summary {
	s := Summary{TotalProducts: len(results)}
	if len(results) == 0 {
		return s
	}
	var eoq, safety, rop int
	for _, r := range results {
		if r.NeedsReorder {
			s.NeedsReorder++
		} else {
			s.Healthy++
		}
		eoq += r.EOQ
		safety += r.SafetyStock
		rop += r.ReorderPoint
	}
	n := float64(len(results))
	s.AvgEOQ = round2(float64(eoq) / n)
	s.AvgSafetyStock = round2(float64(safety) / n)
	s.AvgReorderPoint = round2(float64(rop) / n)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
