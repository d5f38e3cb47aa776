package planning_test

import (
	"testing"
	"time"

	"github.com/gaigek/mrp-system/internal/domain/entity"
	"github.com/gaigek/mrp-system/internal/domain/planning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attach(t *testing.T, item *entity.StockItem, txType entity.TransactionType, due time.Time, qty int, part string) {
	t.Helper()
	ok := item.AttachTransaction(&entity.TransactionRecord{
		Type:              txType,
		DueDate:           due,
		Quantity:          qty,
		PartNumber:        part,
		AvailableQuantity: qty,
	})
	require.True(t, ok, "la transacción no debe ser un duplicado")
}

func saleByPart(item *entity.StockItem, part string) *entity.OpenSale {
	for _, sale := range item.OpenSales {
		if sale.PartNumber == part {
			return sale
		}
	}
	return nil
}

func TestMatchCoverage_ExactaCubreLaVenta(t *testing.T) {
	item := entity.NewStockItem("ITEM-1", 0, "ACME", "SM")
	attach(t, item, entity.TypeReleasedWO, date(2024, time.March, 4), 10, "PART-A")
	attach(t, item, entity.TypeOpenSale, date(2024, time.March, 6), 10, "PART-A")

	planning.MatchCoverage(item)

	sale := saleByPart(item, "PART-A")
	require.NotNil(t, sale)
	assert.True(t, sale.Covered, "la venta debe quedar cubierta por la WO")
	assert.Equal(t, entity.CoverReleased, sale.CoverType)
	assert.Equal(t, 0, sale.RemainingQuantity)

	// La cobertura se propaga a la entrada del libro mayor.
	for _, tx := range item.Transactions {
		if tx.Type == entity.TypeOpenSale {
			assert.True(t, tx.Covered)
			assert.Equal(t, 0, tx.AvailableQuantity)
		}
	}
}

func TestMatchCoverage_FallbackPorSubstring(t *testing.T) {
	// Sin coincidencia exacta: la WO de "PART-B" cubre la venta de
	// "PART-B-REV2" por contención de substring.
	item := entity.NewStockItem("ITEM-2", 0, "", "")
	attach(t, item, entity.TypeIssuedWO, date(2024, time.March, 4), 5, "PART-B")
	attach(t, item, entity.TypeOpenSale, date(2024, time.March, 8), 5, "PART-B-REV2")

	planning.MatchCoverage(item)

	sale := saleByPart(item, "PART-B-REV2")
	require.NotNil(t, sale)
	assert.True(t, sale.Covered)
	assert.Equal(t, entity.CoverIssued, sale.CoverType, "WO emitida marca cobertura issued")
}

func TestMatchCoverage_ParcialDejaRemanente(t *testing.T) {
	// WO de 6 contra venta de 10: la venta queda cubierta con 4 pendientes.
	item := entity.NewStockItem("ITEM-3", 0, "", "")
	attach(t, item, entity.TypeReleasedWO, date(2024, time.March, 4), 6, "PART-C")
	attach(t, item, entity.TypeOpenSale, date(2024, time.March, 5), 10, "PART-C")

	planning.MatchCoverage(item)

	sale := saleByPart(item, "PART-C")
	require.NotNil(t, sale)
	assert.True(t, sale.Covered)
	assert.Equal(t, 4, sale.RemainingQuantity, "deben quedar 4 unidades sin cubrir")

	for _, tx := range item.Transactions {
		if tx.Type == entity.TypeOpenSale {
			assert.Equal(t, 4, tx.AvailableQuantity)
		}
	}
}

func TestMatchCoverage_SobranteDeWORuedaAVariasVentas(t *testing.T) {
	// Una WO de 15 cubre dos ventas de 5 en orden de fecha y queda con 5.
	item := entity.NewStockItem("ITEM-4", 0, "", "")
	attach(t, item, entity.TypeReleasedWO, date(2024, time.March, 4), 15, "PART-D")
	attach(t, item, entity.TypeOpenSale, date(2024, time.March, 5), 5, "PART-D")
	attach(t, item, entity.TypeOpenSale, date(2024, time.March, 7), 5, "PART-D")

	planning.MatchCoverage(item)

	for _, sale := range item.OpenSales {
		assert.True(t, sale.Covered, "ambas ventas deben quedar cubiertas")
	}
	require.Len(t, item.WorkOrders, 1)
	assert.Equal(t, 5, item.WorkOrders[0].AvailableQuantity, "sobrante de la WO")
}

func TestMatchCoverage_SinWOsEsNoOp(t *testing.T) {
	item := entity.NewStockItem("ITEM-5", 0, "", "")
	attach(t, item, entity.TypeOpenSale, date(2024, time.March, 5), 5, "PART-E")

	planning.MatchCoverage(item)

	sale := saleByPart(item, "PART-E")
	require.NotNil(t, sale)
	assert.False(t, sale.Covered, "sin órdenes de trabajo nada se cubre")
}

func TestMatchCoverage_Idempotente(t *testing.T) {
	item := entity.NewStockItem("ITEM-6", 0, "", "")
	attach(t, item, entity.TypeReleasedWO, date(2024, time.March, 4), 10, "PART-F")
	attach(t, item, entity.TypeOpenSale, date(2024, time.March, 6), 10, "PART-F")

	planning.MatchCoverage(item)
	planning.MatchCoverage(item)

	assert.Len(t, item.Transactions, 2, "re-ejecutar el matching no inyecta duplicados")
	sale := saleByPart(item, "PART-F")
	require.NotNil(t, sale)
	assert.True(t, sale.Covered)
}
