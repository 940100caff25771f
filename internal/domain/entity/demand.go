package entity

import "time"

// DemandObservation cantidad de un producto movida en un día (ventas o recepciones).
// Es derivada y no se persiste.
type DemandObservation struct {
	ProductID int64     `db:"product_id"`
	Date      time.Time `db:"date"`
	Quantity  int       `db:"quantity"`
}
