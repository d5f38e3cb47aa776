package dto

import "time"

// HypotheticalOrderDTO una orden tentativa aún no persistida como
// transacción, plegada en la simulación de recomendaciones.
type HypotheticalOrderDTO struct {
	Quantity int       `json:"quantity"`
	DueDate  time.Time `json:"due_date"`
}

// RecommendRequest body para POST /api/items/:code/recommendations.
type RecommendRequest struct {
	GroupBy            string                 `json:"group_by"`
	LeadTimeWeeks      *int                   `json:"lead_time_weeks,omitempty"`
	HypotheticalOrders []HypotheticalOrderDTO `json:"hypothetical_orders,omitempty"`
}

// ContributingTransactionDTO transacción que empujó el balance simulado a
// negativo, con la porción de su cantidad que causó el déficit.
type ContributingTransactionDTO struct {
	Type        int       `json:"type"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Quantity    int       `json:"quantity"`
	PartNumber  string    `json:"part_number"`
	Impact      int       `json:"impact"`
}

// SuggestionDTO una recomendación de reorden consolidada por bucket.
type SuggestionDTO struct {
	BucketStart  time.Time                    `json:"bucket_start"`
	NeedBy       time.Time                    `json:"need_by"`
	Quantity     int                          `json:"quantity"`
	Transactions []ContributingTransactionDTO `json:"transactions"`
}

// UpcomingPOInfoDTO POs reales que llegan dentro del horizonte cercano y ya
// se contaron como suministro inmediato en la simulación.
type UpcomingPOInfoDTO struct {
	POs           []TransactionDTO `json:"pos"`
	TotalQuantity int              `json:"total_quantity"`
}

// RecommendResponse salida del motor de recomendaciones.
type RecommendResponse struct {
	Suggestions          []SuggestionDTO    `json:"suggestions"`
	ResolvingTransaction *TransactionDTO    `json:"resolving_transaction,omitempty"`
	UpcomingPOInfo       *UpcomingPOInfoDTO `json:"upcoming_po_info,omitempty"`
}
