package worklist

import (
	"time"

	"github.com/google/uuid"

	"github.com/gaigek/mrp-system/internal/application/dto"
	"github.com/gaigek/mrp-system/internal/domain"
	"github.com/gaigek/mrp-system/internal/domain/entity"
	"github.com/gaigek/mrp-system/internal/domain/planning"
	"github.com/gaigek/mrp-system/internal/domain/repository"
	"github.com/gaigek/mrp-system/pkg/logger"
)

// UseCase mutaciones del worklist de órdenes. Cada orden confirmada se
// espeja como transacción sintética tipo 1 en el libro mayor del artículo
// origen; toda mutación mantiene ambos lados en sincronía y re-proyecta el
// artículo antes de que el llamador observe el resultado. La recomendación
// se recalcula de forma perezosa, solo cuando se pide.
type UseCase struct {
	items    repository.ItemRepository
	worklist repository.WorklistRepository
	log      *logger.Logger
	groupBy  planning.GroupBy
	now      func() time.Time
}

// NewUseCase construye el caso de uso del worklist.
func NewUseCase(items repository.ItemRepository, worklist repository.WorklistRepository, log *logger.Logger, groupBy planning.GroupBy) *UseCase {
	return &UseCase{items: items, worklist: worklist, log: log, groupBy: groupBy, now: time.Now}
}

// WithClock fija el reloj del caso de uso (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Add confirma una orden para un artículo. Si ya existe una orden del mismo
// artículo con la misma fecha (igualdad solo de fecha), fusiona sumando
// cantidades en la entrada, el PO espejo y su transacción; si no, crea la
// entrada con una referencia única (prefijo reservado + id) y la transacción
// sintética espejada.
func (uc *UseCase) Add(in dto.AddOrderRequest) (*dto.WorklistOrderDTO, error) {
	if in.Item == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	dueDate := uc.tomorrow()
	if in.DueDate != nil {
		dueDate = planning.Truncate(*in.DueDate)
	}

	if existing := uc.worklist.FindByItemAndDate(in.Item, dueDate); existing != nil {
		err := uc.items.Mutate(in.Item, func(item *entity.StockItem) error {
			po, tx := uc.locatePO(item, existing)
			if po == nil || tx == nil {
				return domain.ErrOrderNotFound
			}
			po.Quantity += in.Quantity
			tx.Quantity += in.Quantity
			tx.AvailableQuantity += in.Quantity
			uc.reproject(item)
			return nil
		})
		if err != nil {
			return nil, err
		}
		existing.Quantity += in.Quantity
		uc.log.Info().Str("articulo", in.Item).Str("orden", existing.ID).
			Int("cantidad", existing.Quantity).Msg("orden fusionada en el worklist")
		return toOrderDTO(existing), nil
	}

	id := uuid.NewString()
	order := &entity.WorklistOrder{
		ID:           id,
		Item:         in.Item,
		Quantity:     in.Quantity,
		CreationDate: uc.now(),
		DueDate:      dueDate,
		Reference:    entity.SyntheticPOPrefix + id,
	}

	err := uc.items.Mutate(in.Item, func(item *entity.StockItem) error {
		order.Vendor = item.Vendor
		order.Category = item.Category
		item.AddSyntheticPO(order.Reference, order.Quantity, order.DueDate)
		uc.reproject(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.worklist.Add(order)
	uc.log.Info().Str("articulo", in.Item).Str("orden", order.ID).
		Int("cantidad", order.Quantity).Msg("orden agregada al worklist")
	return toOrderDTO(order), nil
}

// Update cambia cantidad y/o fecha de una orden, aplicando los mismos
// cambios al PO espejo y su transacción.
func (uc *UseCase) Update(id string, in dto.UpdateOrderRequest) (*dto.WorklistOrderDTO, error) {
	if in.Quantity == nil && in.DueDate == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.worklist.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = uc.items.Mutate(order.Item, func(item *entity.StockItem) error {
		po, tx := uc.locatePO(item, order)
		if po == nil || tx == nil {
			return domain.ErrOrderNotFound
		}
		if in.Quantity != nil {
			po.Quantity = *in.Quantity
			tx.Quantity = *in.Quantity
			tx.AvailableQuantity = *in.Quantity
		}
		if in.DueDate != nil {
			due := planning.Truncate(*in.DueDate)
			po.DueDate = due
			tx.DueDate = due
		}
		uc.reproject(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.Quantity != nil {
		order.Quantity = *in.Quantity
	}
	if in.DueDate != nil {
		order.DueDate = planning.Truncate(*in.DueDate)
	}
	return toOrderDTO(order), nil
}

// Remove borra la orden y su espejo (transacción + vista de PO) de forma
// simétrica y atómica.
func (uc *UseCase) Remove(id string) error {
	order, err := uc.worklist.GetByID(id)
	if err != nil {
		return err
	}

	err = uc.items.Mutate(order.Item, func(item *entity.StockItem) error {
		po, _ := uc.locatePO(item, order)
		if po == nil {
			return domain.ErrOrderNotFound
		}
		item.RemovePO(po)
		uc.reproject(item)
		return nil
	})
	if err != nil {
		return err
	}

	if err := uc.worklist.Remove(id); err != nil {
		return err
	}
	uc.log.Info().Str("articulo", order.Item).Str("orden", id).Msg("orden retirada del worklist")
	return nil
}

// Receive materializa un PO: su valor pasa a ser stock físico. Incrementa el
// balance inicial con la cantidad del PO, borra la transacción y la vista, y
// re-proyecta. Operación distinta de Remove. Si el PO era sintético, la
// entrada del worklist que lo originó también se retira.
func (uc *UseCase) Receive(code string, in dto.ReceivePORequest) error {
	var reference string
	err := uc.items.Mutate(code, func(item *entity.StockItem) error {
		var po *entity.PurchaseOrder
		if in.Reference != "" {
			po, _ = item.FindPOByReference(in.Reference)
		} else if in.DueDate != nil {
			po = item.FindPOByDateQuantity(*in.DueDate, in.Quantity)
		}
		if po == nil {
			return domain.ErrOrderNotFound
		}
		reference = po.PurchaseOrderNumber
		item.StartingBalance += po.Quantity
		item.RemovePO(po)
		uc.reproject(item)
		return nil
	})
	if err != nil {
		return err
	}

	if entity.HasSyntheticReference(reference) {
		for _, order := range uc.worklist.List() {
			if order.Reference == reference {
				_ = uc.worklist.Remove(order.ID)
				break
			}
		}
	}
	uc.log.Info().Str("articulo", code).Str("po", reference).Msg("PO recibido")
	return nil
}

// List devuelve el worklist completo.
func (uc *UseCase) List() []dto.WorklistOrderDTO {
	orders := uc.worklist.List()
	out := make([]dto.WorklistOrderDTO, 0, len(orders))
	for _, order := range orders {
		out = append(out, *toOrderDTO(order))
	}
	return out
}

// locatePO camino primario por referencia estable; heurística
// fecha→cantidad→primera coincidencia como respaldo para órdenes importadas
// sin referencia.
func (uc *UseCase) locatePO(item *entity.StockItem, order *entity.WorklistOrder) (*entity.PurchaseOrder, *entity.TransactionRecord) {
	if order.Reference != "" {
		if po, tx := item.FindPOByReference(order.Reference); po != nil && tx != nil {
			return po, tx
		}
	}
	po := item.FindPOByDateQuantity(order.DueDate, order.Quantity)
	if po == nil {
		return nil, nil
	}
	return po, item.TransactionForPO(po)
}

// reproject re-ordena, re-deduplica y re-proyecta el artículo tras una
// mutación del ledger.
func (uc *UseCase) reproject(item *entity.StockItem) {
	item.DedupTransactions()
	item.SortTransactions()
	planning.Project(item, uc.groupBy, planning.Truncate(uc.now()))
}

func (uc *UseCase) tomorrow() time.Time {
	return planning.Truncate(uc.now()).AddDate(0, 0, 1)
}

func toOrderDTO(order *entity.WorklistOrder) *dto.WorklistOrderDTO {
	return &dto.WorklistOrderDTO{
		ID:           order.ID,
		Item:         order.Item,
		Vendor:       order.Vendor,
		Category:     order.Category,
		Quantity:     order.Quantity,
		CreationDate: order.CreationDate,
		DueDate:      order.DueDate,
		Reference:    order.Reference,
	}
}
