package repository

import "github.com/gaigek/mrp-system/internal/domain/entity"

// ItemRepository define el puerto sobre el snapshot en memoria de artículos.
// Replace sustituye el conjunto completo de forma atómica (una ingesta nueva
// reemplaza todo el estado; no hay ingestas incrementales).
type ItemRepository interface {
	Replace(items []*entity.StockItem, categories, vendors []string)
	GetByCode(code string) (*entity.StockItem, error)
	List() []*entity.StockItem
	Categories() []string
	Vendors() []string
	// Mutate ejecuta fn sobre el artículo bajo la sección crítica del
	// repositorio: el cambio de ledger + vistas laterales se aplica completo
	// o no se aplica (atomicidad por artículo).
	Mutate(code string, fn func(item *entity.StockItem) error) error
}
