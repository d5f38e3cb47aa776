package dto

import "time"

// IngestResponse resumen de una ingesta exitosa del snapshot MRP.
type IngestResponse struct {
	Items         int      `json:"items"`
	Categories    []string `json:"categories"`
	Vendors       []string `json:"vendors"`
	RowsSkipped   int      `json:"rows_skipped"`
	DateCoercions int      `json:"date_coercions"`
}

// TransactionDTO una entrada del libro mayor en respuestas HTTP.
type TransactionDTO struct {
	Type              int       `json:"type"`
	Description       string    `json:"description"`
	DueDate           time.Time `json:"due_date"`
	Quantity          int       `json:"quantity"`
	PartNumber        string    `json:"part_number"`
	Covered           bool      `json:"covered"`
	CoverType         string    `json:"cover_type,omitempty"`
	AvailableQuantity int       `json:"available_quantity"`
}

// RunningTotalDTO un punto de la curva de balance proyectado.
type RunningTotalDTO struct {
	Date        time.Time `json:"date"`
	Balance     int       `json:"balance"`
	Type        int       `json:"type"`
	Description string    `json:"description"`
}

// OrderEventDTO un evento de faltante de la proyección codiciosa.
type OrderEventDTO struct {
	DueDate    time.Time `json:"due_date"`
	Quantity   int       `json:"quantity"`
	PartNumber string    `json:"part_number"`
	Vendor     string    `json:"vendor,omitempty"`
	Category   string    `json:"category,omitempty"`
}

// GroupedOrderDTO consolidación de faltantes por semana o mes.
type GroupedOrderDTO struct {
	GroupKey  string    `json:"group_key"`
	GroupDate time.Time `json:"group_date"`
	GroupBy   string    `json:"group_by"`
	Quantity  int       `json:"quantity"`
	Vendor    string    `json:"vendor,omitempty"`
	Category  string    `json:"category,omitempty"`
}

// ItemSummaryDTO fila del listado de inventario.
type ItemSummaryDTO struct {
	Item                 string `json:"item"`
	StartingBalance      int    `json:"starting_balance"`
	Vendor               string `json:"vendor,omitempty"`
	Category             string `json:"category,omitempty"`
	Transactions         int    `json:"transactions"`
	BalanceAfterWO       int    `json:"balance_after_wo"`
	RequiresOrder        bool   `json:"requires_order"`
	HasOverduePO         bool   `json:"has_overdue_po"`
	HasUpcomingPO        bool   `json:"has_upcoming_po"`
	CategoryLeadTimeDays int    `json:"category_lead_time_days"`
}

// ItemDetailDTO detalle completo de un artículo: libro mayor + derivados de
// la proyección.
type ItemDetailDTO struct {
	Item                 string            `json:"item"`
	StartingBalance      int               `json:"starting_balance"`
	Vendor               string            `json:"vendor,omitempty"`
	Category             string            `json:"category,omitempty"`
	CategoryLeadTimeDays int               `json:"category_lead_time_days"`
	Transactions         []TransactionDTO  `json:"transactions"`
	RunningTotals        []RunningTotalDTO `json:"running_totals"`
	Orders               []OrderEventDTO   `json:"orders"`
	GroupedOrders        []GroupedOrderDTO `json:"grouped_orders"`
}

// DashboardSummaryResponse métricas agregadas del snapshot cargado.
type DashboardSummaryResponse struct {
	TotalItems           int `json:"total_items"`
	NegativeBalanceItems int `json:"negative_balance_items"`
	ItemsRequiringOrders int `json:"items_requiring_orders"`
	WorklistOrders       int `json:"worklist_orders"`
	UnitsOnOrder         int `json:"units_on_order"`
}
