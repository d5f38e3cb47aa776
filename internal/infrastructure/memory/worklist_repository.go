package memory

import (
	"sync"
	"time"

	"github.com/gaigek/mrp-system/internal/domain"
	"github.com/gaigek/mrp-system/internal/domain/entity"
)

// WorklistRepository colección plana en memoria de órdenes confirmadas, en
// orden de inserción.
type WorklistRepository struct {
	mu     sync.RWMutex
	orders []*entity.WorklistOrder
}

// NewWorklistRepository construye el repositorio vacío.
func NewWorklistRepository() *WorklistRepository {
	return &WorklistRepository{}
}

// Add agrega la orden al final de la lista.
func (r *WorklistRepository) Add(order *entity.WorklistOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
}

// GetByID devuelve la orden por id.
func (r *WorklistRepository) GetByID(id string) (*entity.WorklistOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// FindByItemAndDate busca una orden del mismo artículo con la misma fecha
// (igualdad solo de fecha) para la fusión en Add.
func (r *WorklistRepository) FindByItemAndDate(item string, dueDate time.Time) *entity.WorklistOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.Item == item && entity.SameDay(order.DueDate, dueDate) {
			return order
		}
	}
	return nil
}

// List devuelve las órdenes en orden de inserción.
func (r *WorklistRepository) List() []*entity.WorklistOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.WorklistOrder, len(r.orders))
	copy(out, r.orders)
	return out
}

// Remove elimina la orden por id.
func (r *WorklistRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, order := range r.orders {
		if order.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrOrderNotFound
}
