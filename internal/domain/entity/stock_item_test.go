package entity_test

import (
	"testing"
	"time"

	"github.com/gaigek/mrp-system/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func tx(txType entity.TransactionType, due time.Time, qty int, part string) *entity.TransactionRecord {
	return &entity.TransactionRecord{
		Type:              txType,
		DueDate:           due,
		Quantity:          qty,
		PartNumber:        part,
		AvailableQuantity: qty,
	}
}

func TestAttachTransaction_PueblaVistasSecundarias(t *testing.T) {
	item := entity.NewStockItem("ITEM-1", 5, "ACME", "SM")

	require.True(t, item.AttachTransaction(tx(entity.TypeOpenPO, date(2024, time.March, 4), 10, "PO-100")))
	require.True(t, item.AttachTransaction(tx(entity.TypeReleasedWO, date(2024, time.March, 5), 4, "PART-A")))
	require.True(t, item.AttachTransaction(tx(entity.TypeIssuedWO, date(2024, time.March, 6), 2, "PART-A")))
	require.True(t, item.AttachTransaction(tx(entity.TypeOpenSale, date(2024, time.March, 7), 6, "PART-A")))

	assert.Len(t, item.Transactions, 4)
	assert.Len(t, item.PurchaseOrders, 1)
	assert.Len(t, item.WorkOrders, 2)
	assert.Len(t, item.OpenSales, 1)
	assert.True(t, item.WorkOrders[0].IsReleased)
	assert.False(t, item.WorkOrders[1].IsReleased)
}

func TestAttachTransaction_RechazaDuplicadosPorClave(t *testing.T) {
	item := entity.NewStockItem("ITEM-2", 0, "", "")
	due := date(2024, time.March, 4)

	require.True(t, item.AttachTransaction(tx(entity.TypeOpenPO, due, 10, "PO-100")))
	assert.False(t, item.AttachTransaction(tx(entity.TypeOpenPO, due, 10, "PO-100")),
		"misma clave compuesta: duplicado")
	// Cambiar cualquier componente de la clave lo vuelve una entrada nueva.
	assert.True(t, item.AttachTransaction(tx(entity.TypeOpenPO, due, 11, "PO-100")))
	assert.True(t, item.AttachTransaction(tx(entity.TypeOpenPO, due.AddDate(0, 0, 1), 10, "PO-100")))

	assert.Len(t, item.Transactions, 3)
	assert.Len(t, item.PurchaseOrders, 3)
}

func TestDedupTransactions_ConservaLaPrimeraOcurrencia(t *testing.T) {
	item := entity.NewStockItem("ITEM-3", 0, "", "")
	first := tx(entity.TypeOpenSale, date(2024, time.March, 4), 5, "PART-B")
	item.Transactions = append(item.Transactions, first)
	item.Transactions = append(item.Transactions, tx(entity.TypeOpenSale, date(2024, time.March, 4), 5, "PART-B"))

	item.DedupTransactions()

	require.Len(t, item.Transactions, 1)
	assert.Same(t, first, item.Transactions[0])
}

func TestSortTransactions_OrdenEstablePorFecha(t *testing.T) {
	item := entity.NewStockItem("ITEM-4", 0, "", "")
	late := tx(entity.TypeOpenSale, date(2024, time.March, 9), 1, "PART-C")
	a := tx(entity.TypeOpenPO, date(2024, time.March, 4), 2, "PO-1")
	b := tx(entity.TypeOpenSale, date(2024, time.March, 4), 3, "PART-C")
	item.Transactions = append(item.Transactions, late, a, b)

	item.SortTransactions()

	assert.Same(t, a, item.Transactions[0])
	assert.Same(t, b, item.Transactions[1], "empate de fecha conserva el orden de entrada")
	assert.Same(t, late, item.Transactions[2])
}

func TestAddSyntheticPO_EspejaAmbosLados(t *testing.T) {
	item := entity.NewStockItem("ITEM-5", 0, "", "")
	ref := entity.SyntheticPOPrefix + "abc123"

	item.AddSyntheticPO(ref, 7, date(2024, time.March, 8))

	po, txRec := item.FindPOByReference(ref)
	require.NotNil(t, po)
	require.NotNil(t, txRec)
	assert.Equal(t, 7, po.Quantity)
	assert.Equal(t, entity.TypeOpenPO, txRec.Type)
	assert.True(t, entity.HasSyntheticReference(txRec.PartNumber))
}

func TestFindPOByDateQuantity_Heuristica(t *testing.T) {
	item := entity.NewStockItem("ITEM-6", 0, "", "")
	due := date(2024, time.March, 8)
	item.AddSyntheticPO("UI-1", 5, due)
	item.AddSyntheticPO("UI-2", 9, due)
	item.AddSyntheticPO("UI-3", 3, date(2024, time.March, 9))

	// Única en su fecha: gana por fecha sin mirar cantidad.
	po := item.FindPOByDateQuantity(date(2024, time.March, 9), 999)
	require.NotNil(t, po)
	assert.Equal(t, "UI-3", po.PurchaseOrderNumber)

	// Varias en la fecha: desempata la cantidad.
	po = item.FindPOByDateQuantity(due, 9)
	require.NotNil(t, po)
	assert.Equal(t, "UI-2", po.PurchaseOrderNumber)

	// Ambiguo total: primera coincidencia, determinista.
	po = item.FindPOByDateQuantity(due, 999)
	require.NotNil(t, po)
	assert.Equal(t, "UI-1", po.PurchaseOrderNumber)

	assert.Nil(t, item.FindPOByDateQuantity(date(2024, time.March, 20), 5))
}

func TestRemovePO_BorraAmbasMitades(t *testing.T) {
	item := entity.NewStockItem("ITEM-7", 0, "", "")
	item.AddSyntheticPO("UI-a", 5, date(2024, time.March, 8))
	item.AddSyntheticPO("UI-b", 6, date(2024, time.March, 9))

	po, _ := item.FindPOByReference("UI-a")
	require.NotNil(t, po)
	item.RemovePO(po)

	assert.Len(t, item.PurchaseOrders, 1)
	assert.Len(t, item.Transactions, 1)
	gone, goneTx := item.FindPOByReference("UI-a")
	assert.Nil(t, gone)
	assert.Nil(t, goneTx)
}

func TestBalanceAfterWorkOrders(t *testing.T) {
	item := entity.NewStockItem("ITEM-8", 10, "", "")
	require.True(t, item.AttachTransaction(tx(entity.TypeReleasedWO, date(2024, time.March, 5), 4, "PART-D")))
	require.True(t, item.AttachTransaction(tx(entity.TypeIssuedWO, date(2024, time.March, 6), 9, "PART-D")))

	assert.Equal(t, 5, item.BalanceAfterWorkOrders(), "10 + 4 liberada - 9 emitida")
}

func TestTransactionKey_IncluyeLosCuatroComponentes(t *testing.T) {
	base := tx(entity.TypeOpenSale, date(2024, time.March, 4), 5, "PART-E")
	assert.Equal(t, base.Key(), tx(entity.TypeOpenSale, date(2024, time.March, 4), 5, "PART-E").Key())
	assert.NotEqual(t, base.Key(), tx(entity.TypeIssuedWO, date(2024, time.March, 4), 5, "PART-E").Key())
	assert.NotEqual(t, base.Key(), tx(entity.TypeOpenSale, date(2024, time.March, 5), 5, "PART-E").Key())
	assert.NotEqual(t, base.Key(), tx(entity.TypeOpenSale, date(2024, time.March, 4), 6, "PART-E").Key())
	assert.NotEqual(t, base.Key(), tx(entity.TypeOpenSale, date(2024, time.March, 4), 5, "PART-X").Key())
}
