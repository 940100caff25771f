package reorder

import (
	"sort"
	"time"

	"github.com/jhoicas/bev-flow/internal/domain/entity"
)

// DemandSeries agrupa observaciones por producto y devuelve una muestra por día con ventas,
// ordenada por fecha. Observaciones repetidas del mismo día se suman; días en cero se descartan.
func DemandSeries(observations []entity.DemandObservation) map[int64][]int {
	type key struct {
		productID int64
		day       time.Time
	}
	totals := make(map[key]int, len(observations))
	for _, o := range observations {
		y, m, d := o.Date.Date()
		totals[key{o.ProductID, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}] += o.Quantity
	}

	keys := make([]key, 0, len(totals))
	for k, qty := range totals {
		if qty > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].productID != keys[j].productID {
			return keys[i].productID < keys[j].productID
		}
		return keys[i].day.Before(keys[j].day)
	})

	series := make(map[int64][]int)
	for _, k := range keys {
		series[k.productID] = append(series[k.productID], totals[k])
	}
	return series
}
