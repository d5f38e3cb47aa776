package entity

import "time"

// WorklistOrder una orden confirmada o editada por el operador. Reference es
// el número de PO sintético espejado en el libro mayor del artículo origen
// (SyntheticPOPrefix + ID), la clave estable que evita la desambiguación por
// fecha/cantidad.
type WorklistOrder struct {
	ID           string
	Item         string
	Vendor       string
	Category     string
	Quantity     int
	CreationDate time.Time
	DueDate      time.Time
	Reference    string
}
