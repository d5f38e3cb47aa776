package repository

import (
	"time"

	"github.com/gaigek/mrp-system/internal/domain/entity"
)

// WorklistRepository define el puerto para la colección plana de órdenes
// confirmadas por el operador.
type WorklistRepository interface {
	Add(order *entity.WorklistOrder)
	GetByID(id string) (*entity.WorklistOrder, error)
	// FindByItemAndDate busca una orden existente para el mismo artículo y la
	// misma fecha (igualdad solo de fecha) para la fusión en Add.
	FindByItemAndDate(item string, dueDate time.Time) *entity.WorklistOrder
	List() []*entity.WorklistOrder
	Remove(id string) error
}
