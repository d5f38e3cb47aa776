package planning

import (
	"sort"
	"strings"

	"github.com/gaigek/mrp-system/internal/domain/entity"
)

// MatchCoverage concilia las órdenes de trabajo contra las ventas abiertas de
// un artículo para no contar dos veces el mismo consumo físico: cuando el
// sistema origen registra la misma demanda como venta (tipo 4) y como orden
// de trabajo (tipo 3 o 6), la venta queda marcada como cubierta y el
// proyector solo descuenta el lado de la orden de trabajo.
//
// Consumo codicioso en orden de fecha (aproximación FIFO): la orden de
// trabajo más temprana cubre la venta pendiente más antigua de esa parte.
// Cobertura parcial soportada en ambos sentidos; una venta se empareja a lo
// sumo con una orden de trabajo (gana la primera), y el sobrante de una
// orden de trabajo puede rodar a varias ventas.
func MatchCoverage(item *entity.StockItem) {
	if item == nil || len(item.WorkOrders) == 0 {
		return
	}

	sort.SliceStable(item.WorkOrders, func(i, j int) bool {
		return item.WorkOrders[i].DueDate.Before(item.WorkOrders[j].DueDate)
	})

	for _, wo := range item.WorkOrders {
		if wo.PartNumber == "" || wo.Quantity == 0 {
			continue
		}
		remaining := wo.Quantity

		candidates := uncoveredSalesExact(item.OpenSales, wo.PartNumber)
		if len(candidates) == 0 {
			// Variantes de sufijo/prefijo del sistema origen: contención de
			// substring en cualquier dirección. Heurística replicada tal
			// cual, sin generalizar.
			candidates = uncoveredSalesContains(item.OpenSales, wo.PartNumber)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].DueDate.Before(candidates[j].DueDate)
		})

		for _, sale := range candidates {
			if remaining <= 0 || sale.Covered {
				continue
			}
			consumed := min(remaining, sale.Quantity)
			sale.Covered = true
			if wo.IsReleased {
				sale.CoverType = entity.CoverReleased
			} else {
				sale.CoverType = entity.CoverIssued
			}
			sale.RemainingQuantity = sale.Quantity - consumed
			remaining -= consumed

			propagateSaleCoverage(item, sale)
		}

		wo.AvailableQuantity = remaining
		propagateWorkOrderLeftover(item, wo)
	}

	// El matching puede reentrar; el dedup final lo mantiene idempotente
	// frente a inyección de duplicados.
	item.DedupTransactions()
}

func uncoveredSalesExact(sales []*entity.OpenSale, partNumber string) []*entity.OpenSale {
	var out []*entity.OpenSale
	for _, sale := range sales {
		if !sale.Covered && sale.PartNumber == partNumber {
			out = append(out, sale)
		}
	}
	return out
}

func uncoveredSalesContains(sales []*entity.OpenSale, partNumber string) []*entity.OpenSale {
	var out []*entity.OpenSale
	for _, sale := range sales {
		if sale.Covered {
			continue
		}
		if strings.Contains(sale.PartNumber, partNumber) || strings.Contains(partNumber, sale.PartNumber) {
			out = append(out, sale)
		}
	}
	return out
}

// propagateSaleCoverage copia covered/coverType/availableQuantity a la
// primera transacción tipo 4 que coincida y no esté ya cubierta (evita
// re-cubrir en reentradas).
func propagateSaleCoverage(item *entity.StockItem, sale *entity.OpenSale) {
	for _, tx := range item.Transactions {
		if tx.Type != entity.TypeOpenSale || tx.Covered {
			continue
		}
		if tx.PartNumber == sale.PartNumber && tx.DueDate.Equal(sale.DueDate) {
			tx.Covered = true
			tx.CoverType = sale.CoverType
			tx.AvailableQuantity = sale.RemainingQuantity
			return
		}
	}
}

// propagateWorkOrderLeftover copia el sobrante final de la orden de trabajo
// a su propia entrada del libro mayor (primera coincidencia).
func propagateWorkOrderLeftover(item *entity.StockItem, wo *entity.WorkOrder) {
	woType := entity.TypeIssuedWO
	if wo.IsReleased {
		woType = entity.TypeReleasedWO
	}
	for _, tx := range item.Transactions {
		if tx.Type == woType && tx.PartNumber == wo.PartNumber && tx.DueDate.Equal(wo.DueDate) {
			tx.AvailableQuantity = wo.AvailableQuantity
			return
		}
	}
}
