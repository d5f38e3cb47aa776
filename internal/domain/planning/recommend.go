package planning

import (
	"sort"
	"time"

	"github.com/gaigek/mrp-system/internal/domain/entity"
)

// DefaultUpcomingHorizonDays ventana de POs "por llegar" contados como
// suministro inmediato en la simulación.
const DefaultUpcomingHorizonDays = 7

// HypotheticalOrder una orden tentativa del operador todavía no persistida
// como transacción; se pliega en el balance simulado antes de recorrer el
// libro mayor.
type HypotheticalOrder struct {
	Quantity int
	DueDate  time.Time
}

// RecommendOptions parámetros de la simulación de recomendaciones.
type RecommendOptions struct {
	GroupBy             GroupBy
	LeadTimeWeeks       int
	UpcomingHorizonDays int
	Hypothetical        []HypotheticalOrder
	Today               time.Time
}

// ContributingTransaction transacción que empujó el balance simulado a
// negativo. Impact es la porción de su cantidad que causó el déficit,
// acotada al déficit restante.
type ContributingTransaction struct {
	Type        entity.TransactionType
	Description string
	DueDate     time.Time
	Quantity    int
	PartNumber  string
	Impact      int
}

// Suggestion recomendación de reorden consolidada por bucket. NeedBy es la
// fecha en que el material debe estar en planta: inicio del bucket menos el
// lead time en semanas.
type Suggestion struct {
	BucketStart  time.Time
	NeedBy       time.Time
	Quantity     int
	Transactions []ContributingTransaction
}

// UpcomingPOInfo POs reales dentro del horizonte cercano, ya contados como
// suministro disponible.
type UpcomingPOInfo struct {
	POs           []*entity.TransactionRecord
	TotalQuantity int
}

// Recommendation salida del motor: o bien sugerencias accionables, o bien un
// PO futuro que ya resuelve el faltante (señal "adelantar este PO" para el
// operador, sin acción nueva).
type Recommendation struct {
	Suggestions          []Suggestion
	ResolvingTransaction *entity.TransactionRecord
	UpcomingPOs          *UpcomingPOInfo
}

// Recommend simula el libro mayor real del artículo hacia adelante y decide
// cuándo y cuánto reordenar. Recalcula todo en cada invocación: O(n) por
// artículo, suficientemente barato para re-ejecutarse ante cada cambio de
// lead time, modo de agrupación u órdenes hipotéticas.
//
// Los POs sintéticos del worklist (prefijo reservado) se excluyen: son el
// plan en curso del operador y no deben contar como resolución preexistente.
func Recommend(item *entity.StockItem, opts RecommendOptions) *Recommendation {
	today := Truncate(opts.Today)
	horizon := opts.UpcomingHorizonDays
	if horizon <= 0 {
		horizon = DefaultUpcomingHorizonDays
	}

	real := realLedger(item)

	// POs por llegar dentro del horizonte: suministro inmediato.
	horizonEnd := today.AddDate(0, 0, horizon)
	upcoming := make(map[*entity.TransactionRecord]struct{})
	var upcomingPOs []*entity.TransactionRecord
	upcomingQty := 0
	for _, tx := range real {
		if tx.Type != entity.TypeOpenPO {
			continue
		}
		due := Truncate(tx.DueDate)
		if !due.Before(today) && !due.After(horizonEnd) {
			upcoming[tx] = struct{}{}
			upcomingPOs = append(upcomingPOs, tx)
			upcomingQty += tx.Quantity
		}
	}

	var upcomingInfo *UpcomingPOInfo
	if len(upcomingPOs) > 0 {
		upcomingInfo = &UpcomingPOInfo{POs: upcomingPOs, TotalQuantity: upcomingQty}
	}

	// Escaneo positivo: si un PO ya programado lleva el balance de negativo
	// a >= 0, el faltante presente se resuelve solo y no se recomienda nada.
	if resolving := findResolvingPO(item.StartingBalance, real); resolving != nil {
		return &Recommendation{ResolvingTransaction: resolving, UpcomingPOs: upcomingInfo}
	}

	simulated := item.StartingBalance + upcomingQty
	for _, h := range opts.Hypothetical {
		simulated += h.Quantity
	}

	type groupNeed struct {
		start time.Time
		txs   []ContributingTransaction
	}
	type pendingOrder struct {
		key      string
		start    time.Time
		quantity int
		txs      []ContributingTransaction
	}
	needs := make(map[string]*groupNeed)
	var pending []pendingOrder

	clampedBucket := func(due time.Time) (string, time.Time) {
		adjusted := Truncate(due)
		if adjusted.Before(today) {
			adjusted = today
		}
		return BucketKey(adjusted, opts.GroupBy), BucketStart(adjusted, opts.GroupBy)
	}

	record := func(due time.Time, tx ContributingTransaction) {
		key, start := clampedBucket(due)
		need, ok := needs[key]
		if !ok {
			need = &groupNeed{start: start}
			needs[key] = need
		}
		need.txs = append(need.txs, tx)
		orderQty := -simulated
		simulated = 0
		if orderQty > 0 {
			pending = append(pending, pendingOrder{
				key:      key,
				start:    start,
				quantity: orderQty,
				txs:      append([]ContributingTransaction(nil), need.txs...),
			})
		}
	}

	// Faltante presente: un balance inicial negativo se registra como
	// demanda virtual en el bucket de hoy; solo se recomienda si el
	// suministro por llegar y las hipotéticas no lo absorben.
	if item.StartingBalance < 0 {
		shortage := -item.StartingBalance
		key, start := clampedBucket(today)
		need, ok := needs[key]
		if !ok {
			need = &groupNeed{start: start}
			needs[key] = need
		}
		need.txs = append(need.txs, ContributingTransaction{
			Type:        entity.TypeBeginningBalance,
			Description: "Current Shortage",
			DueDate:     today,
			Quantity:    shortage,
			PartNumber:  "Current Shortage",
			Impact:      shortage,
		})
		if simulated < 0 {
			orderQty := min(shortage, -simulated)
			if orderQty > 0 {
				pending = append(pending, pendingOrder{
					key:      key,
					start:    start,
					quantity: orderQty,
					txs:      append([]ContributingTransaction(nil), need.txs...),
				})
			}
			simulated = 0
		}
	}

	// Recorrido cronológico del resto del libro mayor. Los POs del horizonte
	// ya se contaron arriba y las hipotéticas se plegaron al inicio.
	for _, tx := range real {
		if _, counted := upcoming[tx]; counted {
			continue
		}
		switch tx.Type {
		case entity.TypeOpenPO, entity.TypeReleasedWO:
			simulated += tx.Quantity
		case entity.TypeOpenSale:
			if tx.Covered {
				continue
			}
			simulated -= tx.AvailableQuantity
			if simulated < 0 {
				record(tx.DueDate, ContributingTransaction{
					Type:        tx.Type,
					Description: tx.Type.Description(),
					DueDate:     tx.DueDate,
					Quantity:    tx.Quantity,
					PartNumber:  tx.PartNumber,
					Impact:      min(tx.AvailableQuantity, -simulated),
				})
			}
		case entity.TypeIssuedWO:
			simulated -= tx.Quantity
			if simulated < 0 {
				record(tx.DueDate, ContributingTransaction{
					Type:        tx.Type,
					Description: tx.Type.Description(),
					DueDate:     tx.DueDate,
					Quantity:    tx.Quantity,
					PartNumber:  tx.PartNumber,
					Impact:      min(tx.Quantity, -simulated),
				})
			}
		}
	}

	// Consolidación por bucket: cantidades sumadas, contribuyentes unidos y
	// deduplicados por identidad (tipo, parte, fecha).
	type consolidated struct {
		start time.Time
		qty   int
		txs   []ContributingTransaction
	}
	merged := make(map[string]*consolidated)
	for _, order := range pending {
		c, ok := merged[order.key]
		if !ok {
			c = &consolidated{start: order.start}
			merged[order.key] = c
		}
		c.qty += order.quantity
		for _, tx := range order.txs {
			if !containsContribution(c.txs, tx) {
				c.txs = append(c.txs, tx)
			}
		}
	}

	suggestions := make([]Suggestion, 0, len(merged))
	for _, c := range merged {
		if c.qty <= 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			BucketStart:  c.start,
			NeedBy:       NeedByDate(c.start, opts.LeadTimeWeeks),
			Quantity:     c.qty,
			Transactions: c.txs,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].BucketStart.Before(suggestions[j].BucketStart)
	})

	return &Recommendation{Suggestions: suggestions, UpcomingPOs: upcomingInfo}
}

// realLedger copia ordenada del libro mayor sin los POs sintéticos del
// worklist.
func realLedger(item *entity.StockItem) []*entity.TransactionRecord {
	real := make([]*entity.TransactionRecord, 0, len(item.Transactions))
	for _, tx := range item.Transactions {
		if tx.Type == entity.TypeOpenPO && entity.HasSyntheticReference(tx.PartNumber) {
			continue
		}
		real = append(real, tx)
	}
	sort.SliceStable(real, func(i, j int) bool {
		return real[i].DueDate.Before(real[j].DueDate)
	})
	return real
}

// findResolvingPO recorre el libro real con las reglas de proyección y
// devuelve el primer PO en el que el balance cruza de negativo a >= 0.
func findResolvingPO(startingBalance int, real []*entity.TransactionRecord) *entity.TransactionRecord {
	balance := startingBalance
	previous := balance
	for _, tx := range real {
		balance = delta(balance, tx)
		if tx.Type == entity.TypeOpenPO && previous < 0 && balance >= 0 {
			return tx
		}
		previous = balance
	}
	return nil
}

func containsContribution(txs []ContributingTransaction, tx ContributingTransaction) bool {
	for _, existing := range txs {
		if existing.Type == tx.Type && existing.PartNumber == tx.PartNumber && existing.DueDate.Equal(tx.DueDate) {
			return true
		}
	}
	return false
}
