package entity

import (
	"sort"
	"strings"
	"time"
)

// SyntheticPOPrefix prefijo reservado para los números de PO generados por el
// worklist. No colisiona con los números reales del ERP y permite excluir
// estos POs de la simulación de recomendaciones.
const SyntheticPOPrefix = "UI-"

// PurchaseOrder vista secundaria de una transacción TypeOpenPO.
type PurchaseOrder struct {
	PurchaseOrderNumber string
	DueDate             time.Time
	Quantity            int
}

// WorkOrder vista secundaria de una transacción TypeReleasedWO o TypeIssuedWO.
// AvailableQuantity es la copia de trabajo que muta durante el matching de
// cobertura, independiente de la entrada canónica en Transactions hasta que
// el matcher la propaga de vuelta.
type WorkOrder struct {
	PartNumber        string
	DueDate           time.Time
	Quantity          int
	AvailableQuantity int
	IsReleased        bool
}

// OpenSale vista secundaria de una transacción TypeOpenSale.
type OpenSale struct {
	PartNumber        string
	DueDate           time.Time
	Quantity          int
	Covered           bool
	CoverType         CoverType
	RemainingQuantity int
}

// Order evento de faltante producido por la proyección de balance (pasada
// codiciosa: "ordenar justo lo que cubre el faltante").
type Order struct {
	DueDate    time.Time
	Quantity   int
	PartNumber string
	Vendor     string
	Category   string
}

// GroupedOrder consolidación de Orders por semana o mes.
type GroupedOrder struct {
	GroupKey  string
	GroupDate time.Time
	GroupBy   string
	DueDate   time.Time
	Quantity  int
	Vendor    string
	Category  string
}

// RunningTotal un punto de la curva de balance proyectado: un punto por
// transacción, en orden cronológico.
type RunningTotal struct {
	Date        time.Time
	Balance     int
	Type        TransactionType
	Description string
}

// StockItem raíz de agregado: un artículo único del snapshot con su libro
// mayor y los resultados derivados. Las vistas secundarias (PurchaseOrders,
// WorkOrders, OpenSales) duplican subconjuntos de Transactions y solo se
// sincronizan a través de los métodos de mutación de este tipo.
type StockItem struct {
	Item            string
	StartingBalance int
	Vendor          string
	Category        string

	Transactions   []*TransactionRecord
	PurchaseOrders []*PurchaseOrder
	WorkOrders     []*WorkOrder
	OpenSales      []*OpenSale

	// Derivados de la proyección de balance; se recalculan tras cada
	// mutación del libro mayor.
	Orders        []Order
	GroupedOrders []GroupedOrder
	RunningTotals []RunningTotal
}

// NewStockItem construye un artículo sembrado por un registro de tipo 0.
func NewStockItem(code string, startingBalance int, vendor, category string) *StockItem {
	return &StockItem{
		Item:            code,
		StartingBalance: startingBalance,
		Vendor:          vendor,
		Category:        category,
		Transactions:    []*TransactionRecord{},
		PurchaseOrders:  []*PurchaseOrder{},
		WorkOrders:      []*WorkOrder{},
		OpenSales:       []*OpenSale{},
	}
}

// AttachTransaction agrega una transacción al libro mayor y pobla la vista
// secundaria correspondiente. Las transacciones duplicadas (misma clave
// compuesta) se descartan y el método devuelve false.
func (s *StockItem) AttachTransaction(tx *TransactionRecord) bool {
	key := tx.Key()
	for _, existing := range s.Transactions {
		if existing.Key() == key {
			return false
		}
	}
	s.Transactions = append(s.Transactions, tx)

	switch tx.Type {
	case TypeOpenPO:
		s.PurchaseOrders = append(s.PurchaseOrders, &PurchaseOrder{
			PurchaseOrderNumber: tx.PartNumber,
			DueDate:             tx.DueDate,
			Quantity:            tx.Quantity,
		})
	case TypeReleasedWO:
		s.WorkOrders = append(s.WorkOrders, &WorkOrder{
			PartNumber:        tx.PartNumber,
			DueDate:           tx.DueDate,
			Quantity:          tx.Quantity,
			AvailableQuantity: tx.Quantity,
			IsReleased:        true,
		})
	case TypeOpenSale:
		s.OpenSales = append(s.OpenSales, &OpenSale{
			PartNumber:        tx.PartNumber,
			DueDate:           tx.DueDate,
			Quantity:          tx.Quantity,
			RemainingQuantity: tx.Quantity,
		})
	case TypeIssuedWO:
		s.WorkOrders = append(s.WorkOrders, &WorkOrder{
			PartNumber:        tx.PartNumber,
			DueDate:           tx.DueDate,
			Quantity:          tx.Quantity,
			AvailableQuantity: tx.Quantity,
			IsReleased:        false,
		})
	}
	return true
}

// SortTransactions ordena el libro mayor por fecha de vencimiento ascendente.
// Orden estable: los empates conservan el orden de entrada, que importa para
// la curva de balance y el bucketing de recomendaciones.
func (s *StockItem) SortTransactions() {
	sort.SliceStable(s.Transactions, func(i, j int) bool {
		return s.Transactions[i].DueDate.Before(s.Transactions[j].DueDate)
	})
}

// DedupTransactions elimina duplicados por clave compuesta conservando la
// primera ocurrencia. Idempotente: sobre una lista ya deduplicada es no-op.
func (s *StockItem) DedupTransactions() {
	seen := make(map[string]struct{}, len(s.Transactions))
	unique := s.Transactions[:0]
	for _, tx := range s.Transactions {
		key := tx.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, tx)
	}
	s.Transactions = unique
}

// AddSyntheticPO inserta la transacción sintética tipo 1 que respalda una
// orden del worklist, junto con su espejo en PurchaseOrders, y deja el libro
// mayor ordenado y deduplicado.
func (s *StockItem) AddSyntheticPO(reference string, quantity int, dueDate time.Time) {
	s.AttachTransaction(&TransactionRecord{
		Type:              TypeOpenPO,
		DueDate:           dueDate,
		Quantity:          quantity,
		PartNumber:        reference,
		AvailableQuantity: quantity,
	})
	s.DedupTransactions()
	s.SortTransactions()
}

// FindPOByReference localiza la vista de PO y su transacción por número de
// orden. Camino primario de desambiguación: la referencia estable generada
// por el worklist viaja en ambos lados.
func (s *StockItem) FindPOByReference(reference string) (*PurchaseOrder, *TransactionRecord) {
	var po *PurchaseOrder
	for _, p := range s.PurchaseOrders {
		if p.PurchaseOrderNumber == reference {
			po = p
			break
		}
	}
	var tx *TransactionRecord
	for _, t := range s.Transactions {
		if t.Type == TypeOpenPO && t.PartNumber == reference {
			tx = t
			break
		}
	}
	return po, tx
}

// FindPOByDateQuantity heurística de respaldo para órdenes sin referencia:
// empata por fecha; si hay varias en esa fecha, por cantidad; si sigue
// ambiguo, primera coincidencia (determinista).
func (s *StockItem) FindPOByDateQuantity(dueDate time.Time, quantity int) *PurchaseOrder {
	var candidates []*PurchaseOrder
	for _, po := range s.PurchaseOrders {
		if SameDay(po.DueDate, dueDate) {
			candidates = append(candidates, po)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	for _, po := range candidates {
		if po.Quantity == quantity {
			return po
		}
	}
	return candidates[0]
}

// RemovePO elimina atómicamente la vista de PO y su transacción tipo 1. Las
// dos mitades se borran juntas: un lado sin el otro viola el invariante de
// espejo del worklist.
func (s *StockItem) RemovePO(po *PurchaseOrder) {
	for i, p := range s.PurchaseOrders {
		if p == po {
			s.PurchaseOrders = append(s.PurchaseOrders[:i], s.PurchaseOrders[i+1:]...)
			break
		}
	}
	for i, t := range s.Transactions {
		if t.Type == TypeOpenPO && t.PartNumber == po.PurchaseOrderNumber && SameDay(t.DueDate, po.DueDate) {
			s.Transactions = append(s.Transactions[:i], s.Transactions[i+1:]...)
			break
		}
	}
}

// TransactionForPO devuelve la transacción tipo 1 que respalda la vista dada.
func (s *StockItem) TransactionForPO(po *PurchaseOrder) *TransactionRecord {
	for _, t := range s.Transactions {
		if t.Type == TypeOpenPO && t.PartNumber == po.PurchaseOrderNumber && SameDay(t.DueDate, po.DueDate) {
			return t
		}
	}
	return nil
}

// BalanceAfterWorkOrders balance inicial ajustado por las órdenes de trabajo:
// las liberadas suman (producción) y las emitidas restan (consumo).
func (s *StockItem) BalanceAfterWorkOrders() int {
	balance := s.StartingBalance
	for _, wo := range s.WorkOrders {
		if wo.IsReleased {
			balance += wo.Quantity
		} else {
			balance -= wo.Quantity
		}
	}
	return balance
}

// HasSyntheticReference reporta si la referencia lleva el prefijo reservado
// del worklist.
func HasSyntheticReference(partNumber string) bool {
	return strings.HasPrefix(partNumber, SyntheticPOPrefix)
}
