package memory

import (
	"sync"

	"github.com/gaigek/mrp-system/internal/domain"
	"github.com/gaigek/mrp-system/internal/domain/entity"
)

// ItemRepository snapshot en memoria de artículos. Un RWMutex protege el
// conjunto completo: cada mutación de un artículo (ledger + vistas
// laterales) se aplica dentro de una sola sección crítica, de modo que
// ninguna lectura observa una aplicación parcial.
type ItemRepository struct {
	mu         sync.RWMutex
	byCode     map[string]*entity.StockItem
	ordered    []*entity.StockItem
	categories []string
	vendors    []string
}

// NewItemRepository construye el repositorio vacío (sin snapshot cargado).
func NewItemRepository() *ItemRepository {
	return &ItemRepository{byCode: map[string]*entity.StockItem{}}
}

// Replace sustituye el conjunto completo de forma atómica. La ingesta
// construye el snapshot nuevo por fuera y solo al final lo intercambia: una
// ingesta fallida nunca llega aquí y el estado previo queda intacto.
func (r *ItemRepository) Replace(items []*entity.StockItem, categories, vendors []string) {
	byCode := make(map[string]*entity.StockItem, len(items))
	for _, item := range items {
		byCode[item.Item] = item
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCode = byCode
	r.ordered = items
	r.categories = categories
	r.vendors = vendors
}

// GetByCode devuelve el artículo por código.
func (r *ItemRepository) GetByCode(code string) (*entity.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// List devuelve los artículos en el orden del snapshot.
func (r *ItemRepository) List() []*entity.StockItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.StockItem, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Categories categorías únicas del snapshot.
func (r *ItemRepository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.categories...)
}

// Vendors proveedores únicos del snapshot.
func (r *ItemRepository) Vendors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.vendors...)
}

// Mutate ejecuta fn sobre el artículo bajo el lock de escritura: el cambio
// se aplica completo o no se aplica.
func (r *ItemRepository) Mutate(code string, fn func(item *entity.StockItem) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byCode[code]
	if !ok {
		return domain.ErrItemNotFound
	}
	return fn(item)
}
