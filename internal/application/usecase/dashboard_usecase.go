package usecase

import (
	"github.com/gaigek/mrp-system/internal/application/dto"
	"github.com/gaigek/mrp-system/internal/domain/repository"
)

// DashboardUseCase métricas agregadas del snapshot para las tarjetas del
// tablero.
type DashboardUseCase struct {
	items    repository.ItemRepository
	worklist repository.WorklistRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(items repository.ItemRepository, worklist repository.WorklistRepository) *DashboardUseCase {
	return &DashboardUseCase{items: items, worklist: worklist}
}

// Summary totales del snapshot cargado y del worklist.
func (uc *DashboardUseCase) Summary() dto.DashboardSummaryResponse {
	summary := dto.DashboardSummaryResponse{}
	for _, item := range uc.items.List() {
		summary.TotalItems++
		if item.StartingBalance < 0 {
			summary.NegativeBalanceItems++
		}
		if len(item.Orders) > 0 {
			summary.ItemsRequiringOrders++
		}
	}
	for _, order := range uc.worklist.List() {
		summary.WorklistOrders++
		summary.UnitsOnOrder += order.Quantity
	}
	return summary
}
