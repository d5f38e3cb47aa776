package entity

import (
	"fmt"
	"time"
)

// TransactionType código de tipo de transacción según el export del MRP/ERP externo.
type TransactionType int

// Tipos de transacción reconocidos (value object conceptual).
// El pipeline de ingesta solo produce 0, 1, 3, 4 y 6; el tipo 8 se descarta
// al importar y los demás existen únicamente en la tabla de descripciones.
const (
	TypeBeginningBalance   TransactionType = 0
	TypeOpenPO             TransactionType = 1
	TypeOpenWO             TransactionType = 2
	TypeReleasedWO         TransactionType = 3
	TypeOpenSale           TransactionType = 4
	TypePlannedRequirement TransactionType = 5
	TypeIssuedWO           TransactionType = 6
	TypeQuote              TransactionType = 7
	TypeMinBalance         TransactionType = 8
)

// Description devuelve la descripción legible del tipo de transacción.
func (t TransactionType) Description() string {
	switch t {
	case TypeBeginningBalance:
		return "Beginning Balance"
	case TypeOpenPO:
		return "Open PO"
	case TypeOpenWO:
		return "Open WO"
	case TypeReleasedWO:
		return "Released WO"
	case TypeOpenSale:
		return "Open Sale"
	case TypePlannedRequirement:
		return "Planned Requirement"
	case TypeIssuedWO:
		return "Issued"
	case TypeQuote:
		return "Quote"
	case TypeMinBalance:
		return "Min Balance"
	default:
		return "Unknown"
	}
}

// CoverType indica qué clase de orden de trabajo cubrió una demanda.
type CoverType string

const (
	CoverNone     CoverType = ""
	CoverReleased CoverType = "released"
	CoverIssued   CoverType = "issued"
)

// TransactionRecord una entrada del libro mayor de un artículo.
// Para TypeOpenPO PartNumber contiene el número de la orden de compra;
// para los demás tipos es la referencia de parte del sistema origen.
type TransactionRecord struct {
	Type       TransactionType
	DueDate    time.Time
	Quantity   int
	PartNumber string
	// Estado de cobertura (mutado por el matcher de cobertura):
	// Covered=true implica CoverType != CoverNone y AvailableQuantity <= Quantity.
	Covered           bool
	CoverType         CoverType
	AvailableQuantity int
}

// Key clave compuesta para deduplicación: un mismo PO/WO/venta exportado dos
// veces en el snapshot produce la misma clave.
func (t TransactionRecord) Key() string {
	return fmt.Sprintf("%d|%s|%d|%d", t.Type, t.PartNumber, t.DueDate.UnixMilli(), t.Quantity)
}

// SameDay compara solo la fecha (ignora hora), en la zona de la transacción.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
