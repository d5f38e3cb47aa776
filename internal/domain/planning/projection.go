package planning

import (
	"sort"
	"time"

	"github.com/gaigek/mrp-system/internal/domain/entity"
)

// NegativeBalancePart referencia sintética del faltante causado por un
// balance inicial negativo.
const NegativeBalancePart = "Negative Balance"

// delta aplica la regla por tipo de transacción al balance acumulado.
// Tipo 1 (PO) y tipo 3 (WO liberada) suman inventario; tipo 4 (venta) resta
// su cantidad disponible SOLO si no está cubierta (la demanda cubierta ya se
// neteó contra una orden de trabajo y no debe restarse dos veces); tipo 6
// (WO emitida) resta incondicionalmente: la cobertura solo suprime el lado
// de la venta.
func delta(balance int, tx *entity.TransactionRecord) int {
	switch tx.Type {
	case entity.TypeOpenPO, entity.TypeReleasedWO:
		return balance + tx.Quantity
	case entity.TypeOpenSale:
		if !tx.Covered {
			return balance - tx.AvailableQuantity
		}
		return balance
	case entity.TypeIssuedWO:
		return balance - tx.Quantity
	default:
		return balance
	}
}

// Project recalcula los derivados de proyección del artículo: la lista
// codiciosa de faltantes (Orders), su consolidación por bucket
// (GroupedOrders) y la curva completa de balance (RunningTotals). Deja el
// libro mayor ordenado. Se invoca tras cada mutación del ledger y limpia los
// derivados previos, por lo que es re-entrante.
//
// La pasada codiciosa ordena exactamente lo necesario para cubrir cada
// faltante y asume que llega al instante (el lead time se aplica después,
// solo a la fecha "needs to be in by" de la recomendación, no a esta pasada).
func Project(item *entity.StockItem, groupBy GroupBy, today time.Time) {
	item.SortTransactions()

	item.Orders = item.Orders[:0]
	item.GroupedOrders = item.GroupedOrders[:0]
	item.RunningTotals = item.RunningTotals[:0]

	balance := item.StartingBalance
	if balance < 0 {
		// Recomendación permanente: no pone a cero el balance real del
		// artículo, solo el de trabajo de esta pasada.
		item.Orders = append(item.Orders, entity.Order{
			DueDate:    today,
			Quantity:   -balance,
			PartNumber: NegativeBalancePart,
			Vendor:     item.Vendor,
			Category:   item.Category,
		})
		balance = 0
	}

	for _, tx := range item.Transactions {
		balance = delta(balance, tx)
		if balance < 0 {
			item.Orders = append(item.Orders, entity.Order{
				DueDate:    tx.DueDate,
				Quantity:   -balance,
				PartNumber: tx.PartNumber,
				Vendor:     item.Vendor,
				Category:   item.Category,
			})
			balance = 0
		}
	}

	item.GroupedOrders = groupOrders(item, groupBy)

	// Traza completa para graficar: misma regla por tipo, sin el reset
	// codicioso a cero. Un punto por transacción.
	trace := item.StartingBalance
	for _, tx := range item.Transactions {
		trace = delta(trace, tx)
		item.RunningTotals = append(item.RunningTotals, entity.RunningTotal{
			Date:        tx.DueDate,
			Balance:     trace,
			Type:        tx.Type,
			Description: tx.Type.Description(),
		})
	}
}

func groupOrders(item *entity.StockItem, groupBy GroupBy) []entity.GroupedOrder {
	type bucket struct {
		start   time.Time
		dueDate time.Time
		total   int
	}
	buckets := make(map[string]*bucket)
	for _, order := range item.Orders {
		key := BucketKey(order.DueDate, groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{start: BucketStart(order.DueDate, groupBy), dueDate: order.DueDate}
			buckets[key] = b
		}
		b.total += order.Quantity
	}

	grouped := make([]entity.GroupedOrder, 0, len(buckets))
	for key, b := range buckets {
		grouped = append(grouped, entity.GroupedOrder{
			GroupKey:  key,
			GroupDate: b.start,
			GroupBy:   string(groupBy),
			DueDate:   b.dueDate,
			Quantity:  b.total,
			Vendor:    item.Vendor,
			Category:  item.Category,
		})
	}
	sort.Slice(grouped, func(i, j int) bool {
		return grouped[i].GroupDate.Before(grouped[j].GroupDate)
	})
	return grouped
}
