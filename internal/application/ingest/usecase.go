package ingest

import (
	"sort"
	"time"

	"github.com/gaigek/mrp-system/internal/domain"
	"github.com/gaigek/mrp-system/internal/domain/entity"
	"github.com/gaigek/mrp-system/internal/domain/planning"
	"github.com/gaigek/mrp-system/internal/domain/repository"
	"github.com/gaigek/mrp-system/pkg/logger"
)

// UseCase orquesta la ingesta del snapshot: parseo → dedup/orden del libro
// mayor → matching de cobertura → proyección de balance → reemplazo atómico
// del snapshot en memoria. Una ingesta fallida deja el estado previo intacto.
type UseCase struct {
	items   repository.ItemRepository
	log     *logger.Logger
	groupBy planning.GroupBy
	now     func() time.Time
}

// NewUseCase construye el caso de uso de ingesta. groupBy es el modo de
// agrupación por defecto para la proyección inicial.
func NewUseCase(items repository.ItemRepository, log *logger.Logger, groupBy planning.GroupBy) *UseCase {
	return &UseCase{items: items, log: log, groupBy: groupBy, now: time.Now}
}

// WithClock fija el reloj del caso de uso (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Result resumen de la ingesta para la capa de presentación.
type Result struct {
	Items         int
	Categories    []string
	Vendors       []string
	RowsSkipped   int
	DateCoercions int
}

// Ingest procesa el contenido crudo del snapshot MRP y reemplaza el conjunto
// de artículos completo. Los saltos de fila son blandos (contados, nunca
// abortan); solo una falla estructural del CSV devuelve IngestionError, y en
// ese caso el snapshot anterior no se toca.
func (uc *UseCase) Ingest(raw string) (*Result, error) {
	today := uc.now()
	parsed, err := NewParser(uc.log, today).Parse(raw)
	if err != nil {
		return nil, &domain.IngestionError{Reason: "formato delimitado inválido", Err: err}
	}

	for _, item := range parsed.Items {
		item.DedupTransactions()
		item.SortTransactions()
		planning.MatchCoverage(item)
		planning.Project(item, uc.groupBy, today)
	}

	categories := uniqueNonEmpty(parsed.Items, func(i *entity.StockItem) string { return i.Category })
	vendors := uniqueNonEmpty(parsed.Items, func(i *entity.StockItem) string { return i.Vendor })

	uc.items.Replace(parsed.Items, categories, vendors)

	uc.log.Info().
		Int("articulos", len(parsed.Items)).
		Int("filas_saltadas", parsed.RowsSkipped).
		Int("fechas_coercionadas", parsed.DateCoercions).
		Msg("snapshot MRP ingerido")

	return &Result{
		Items:         len(parsed.Items),
		Categories:    categories,
		Vendors:       vendors,
		RowsSkipped:   parsed.RowsSkipped,
		DateCoercions: parsed.DateCoercions,
	}, nil
}

func uniqueNonEmpty(items []*entity.StockItem, get func(*entity.StockItem) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range items {
		v := get(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
