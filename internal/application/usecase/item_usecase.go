package usecase

import (
	"strings"
	"time"

	"github.com/gaigek/mrp-system/internal/application/dto"
	"github.com/gaigek/mrp-system/internal/domain/entity"
	"github.com/gaigek/mrp-system/internal/domain/planning"
	"github.com/gaigek/mrp-system/internal/domain/repository"
)

// ItemFilter filtro del listado de inventario.
type ItemFilter struct {
	Category string
	Vendor   string
	Search   string
	// Mode: "all", "negative" (balance inicial negativo) o "needsOrder"
	// (la proyección emitió al menos un faltante).
	Mode string
}

// ItemUseCase consultas de lectura sobre el snapshot: listado filtrado y
// detalle con la proyección recalculada.
type ItemUseCase struct {
	items repository.ItemRepository
	now   func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(items repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{items: items, now: time.Now}
}

// WithClock fija el reloj del caso de uso (tests).
func (uc *ItemUseCase) WithClock(now func() time.Time) *ItemUseCase {
	uc.now = now
	return uc
}

// List devuelve el listado de artículos aplicando los filtros de categoría,
// proveedor, búsqueda por código y estado.
func (uc *ItemUseCase) List(filter ItemFilter) []dto.ItemSummaryDTO {
	today := planning.Truncate(uc.now())
	out := []dto.ItemSummaryDTO{}
	for _, item := range uc.items.List() {
		if filter.Category != "" && filter.Category != "all" && item.Category != filter.Category {
			continue
		}
		if filter.Vendor != "" && filter.Vendor != "all" && item.Vendor != filter.Vendor {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(item.Item), strings.ToLower(filter.Search)) {
			continue
		}
		switch filter.Mode {
		case "negative":
			if item.StartingBalance >= 0 {
				continue
			}
		case "needsOrder":
			if len(item.Orders) == 0 {
				continue
			}
		}
		out = append(out, toItemSummary(item, today))
	}
	return out
}

// Detail devuelve el detalle del artículo con la proyección recalculada en
// el modo de agrupación pedido.
func (uc *ItemUseCase) Detail(code string, groupBy planning.GroupBy) (*dto.ItemDetailDTO, error) {
	var detail *dto.ItemDetailDTO
	err := uc.items.Mutate(code, func(item *entity.StockItem) error {
		planning.Project(item, groupBy, planning.Truncate(uc.now()))
		detail = toItemDetail(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func toItemSummary(item *entity.StockItem, today time.Time) dto.ItemSummaryDTO {
	overdue, upcoming := poIndicators(item, today)
	return dto.ItemSummaryDTO{
		Item:                 item.Item,
		StartingBalance:      item.StartingBalance,
		Vendor:               item.Vendor,
		Category:             item.Category,
		Transactions:         len(item.Transactions),
		BalanceAfterWO:       item.BalanceAfterWorkOrders(),
		RequiresOrder:        len(item.Orders) > 0,
		HasOverduePO:         overdue,
		HasUpcomingPO:        upcoming,
		CategoryLeadTimeDays: planning.LeadTimeDays(item.Category),
	}
}

// poIndicators señala POs vencidos (fecha pasada) y por llegar (dentro de la
// semana siguiente).
func poIndicators(item *entity.StockItem, today time.Time) (overdue, upcoming bool) {
	weekAhead := today.AddDate(0, 0, 7)
	for _, po := range item.PurchaseOrders {
		due := planning.Truncate(po.DueDate)
		if due.Before(today) {
			overdue = true
		} else if !due.After(weekAhead) {
			upcoming = true
		}
	}
	return overdue, upcoming
}

func toItemDetail(item *entity.StockItem) *dto.ItemDetailDTO {
	detail := &dto.ItemDetailDTO{
		Item:                 item.Item,
		StartingBalance:      item.StartingBalance,
		Vendor:               item.Vendor,
		Category:             item.Category,
		CategoryLeadTimeDays: planning.LeadTimeDays(item.Category),
		Transactions:         make([]dto.TransactionDTO, 0, len(item.Transactions)),
		RunningTotals:        make([]dto.RunningTotalDTO, 0, len(item.RunningTotals)),
		Orders:               make([]dto.OrderEventDTO, 0, len(item.Orders)),
		GroupedOrders:        make([]dto.GroupedOrderDTO, 0, len(item.GroupedOrders)),
	}
	for _, tx := range item.Transactions {
		detail.Transactions = append(detail.Transactions, toTransactionDTO(tx))
	}
	for _, rt := range item.RunningTotals {
		detail.RunningTotals = append(detail.RunningTotals, dto.RunningTotalDTO{
			Date:        rt.Date,
			Balance:     rt.Balance,
			Type:        int(rt.Type),
			Description: rt.Description,
		})
	}
	for _, order := range item.Orders {
		detail.Orders = append(detail.Orders, dto.OrderEventDTO{
			DueDate:    order.DueDate,
			Quantity:   order.Quantity,
			PartNumber: order.PartNumber,
			Vendor:     order.Vendor,
			Category:   order.Category,
		})
	}
	for _, g := range item.GroupedOrders {
		detail.GroupedOrders = append(detail.GroupedOrders, dto.GroupedOrderDTO{
			GroupKey:  g.GroupKey,
			GroupDate: g.GroupDate,
			GroupBy:   g.GroupBy,
			Quantity:  g.Quantity,
			Vendor:    g.Vendor,
			Category:  g.Category,
		})
	}
	return detail
}
