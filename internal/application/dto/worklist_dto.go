package dto

import "time"

// AddOrderRequest body para POST /api/orders.
type AddOrderRequest struct {
	Item     string     `json:"item"`
	Quantity int        `json:"quantity"`
	DueDate  *time.Time `json:"due_date,omitempty"` // vacío = mañana
}

// UpdateOrderRequest body para PUT /api/orders/:id. Campos nil no cambian.
type UpdateOrderRequest struct {
	Quantity *int       `json:"quantity,omitempty"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// ReceivePORequest body para POST /api/items/:code/receive. Reference es el
// camino primario; due_date+quantity es el fallback heurístico para POs
// reales del ERP.
type ReceivePORequest struct {
	Reference string     `json:"reference,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Quantity  int        `json:"quantity,omitempty"`
}

// WorklistOrderDTO una orden del worklist en respuestas HTTP.
type WorklistOrderDTO struct {
	ID           string    `json:"id"`
	Item         string    `json:"item"`
	Vendor       string    `json:"vendor,omitempty"`
	Category     string    `json:"category,omitempty"`
	Quantity     int       `json:"quantity"`
	CreationDate time.Time `json:"creation_date"`
	DueDate      time.Time `json:"due_date"`
	Reference    string    `json:"reference"`
}
