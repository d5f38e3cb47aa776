package usecase

import (
	"time"

	"github.com/gaigek/mrp-system/internal/application/dto"
	"github.com/gaigek/mrp-system/internal/domain/entity"
	"github.com/gaigek/mrp-system/internal/domain/planning"
	"github.com/gaigek/mrp-system/internal/domain/repository"
)

// PlanningDefaults parámetros de simulación cuando la petición no los trae.
type PlanningDefaults struct {
	GroupBy             planning.GroupBy
	LeadTimeWeeks       int
	UpcomingHorizonDays int
}

// RecommendUseCase expone el motor de recomendaciones de reorden. Cada
// llamada re-simula el artículo completo; no hay variante incremental ni
// memoización, el recálculo es barato.
type RecommendUseCase struct {
	items    repository.ItemRepository
	defaults PlanningDefaults
	now      func() time.Time
}

// NewRecommendUseCase construye el caso de uso.
func NewRecommendUseCase(items repository.ItemRepository, defaults PlanningDefaults) *RecommendUseCase {
	return &RecommendUseCase{items: items, defaults: defaults, now: time.Now}
}

// WithClock fija el reloj del caso de uso (tests).
func (uc *RecommendUseCase) WithClock(now func() time.Time) *RecommendUseCase {
	uc.now = now
	return uc
}

// Recommend simula el artículo con los parámetros de la petición y devuelve
// sugerencias por bucket, o el PO ya programado que resuelve el faltante.
func (uc *RecommendUseCase) Recommend(code string, in dto.RecommendRequest) (*dto.RecommendResponse, error) {
	item, err := uc.items.GetByCode(code)
	if err != nil {
		return nil, err
	}

	leadTimeWeeks := uc.defaults.LeadTimeWeeks
	if in.LeadTimeWeeks != nil {
		leadTimeWeeks = *in.LeadTimeWeeks
	}
	groupBy := uc.defaults.GroupBy
	if in.GroupBy != "" {
		groupBy = planning.ParseGroupBy(in.GroupBy)
	}

	hypothetical := make([]planning.HypotheticalOrder, 0, len(in.HypotheticalOrders))
	for _, h := range in.HypotheticalOrders {
		hypothetical = append(hypothetical, planning.HypotheticalOrder{
			Quantity: h.Quantity,
			DueDate:  h.DueDate,
		})
	}

	rec := planning.Recommend(item, planning.RecommendOptions{
		GroupBy:             groupBy,
		LeadTimeWeeks:       leadTimeWeeks,
		UpcomingHorizonDays: uc.defaults.UpcomingHorizonDays,
		Hypothetical:        hypothetical,
		Today:               uc.now(),
	})

	return toRecommendResponse(rec), nil
}

func toRecommendResponse(rec *planning.Recommendation) *dto.RecommendResponse {
	out := &dto.RecommendResponse{Suggestions: []dto.SuggestionDTO{}}

	for _, s := range rec.Suggestions {
		txs := make([]dto.ContributingTransactionDTO, 0, len(s.Transactions))
		for _, tx := range s.Transactions {
			txs = append(txs, dto.ContributingTransactionDTO{
				Type:        int(tx.Type),
				Description: tx.Description,
				DueDate:     tx.DueDate,
				Quantity:    tx.Quantity,
				PartNumber:  tx.PartNumber,
				Impact:      tx.Impact,
			})
		}
		out.Suggestions = append(out.Suggestions, dto.SuggestionDTO{
			BucketStart:  s.BucketStart,
			NeedBy:       s.NeedBy,
			Quantity:     s.Quantity,
			Transactions: txs,
		})
	}

	if rec.ResolvingTransaction != nil {
		resolved := toTransactionDTO(rec.ResolvingTransaction)
		out.ResolvingTransaction = &resolved
	}
	if rec.UpcomingPOs != nil {
		info := &dto.UpcomingPOInfoDTO{TotalQuantity: rec.UpcomingPOs.TotalQuantity}
		for _, po := range rec.UpcomingPOs.POs {
			info.POs = append(info.POs, toTransactionDTO(po))
		}
		out.UpcomingPOInfo = info
	}
	return out
}

func toTransactionDTO(tx *entity.TransactionRecord) dto.TransactionDTO {
	return dto.TransactionDTO{
		Type:              int(tx.Type),
		Description:       tx.Type.Description(),
		DueDate:           tx.DueDate,
		Quantity:          tx.Quantity,
		PartNumber:        tx.PartNumber,
		Covered:           tx.Covered,
		CoverType:         string(tx.CoverType),
		AvailableQuantity: tx.AvailableQuantity,
	}
}
