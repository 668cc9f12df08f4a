package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// DealHistoryRepository define el puerto de persistencia para DealHistory.
// Las entradas son append-only: no hay Update.
type DealHistoryRepository interface {
	Create(h *entity.DealHistory) error
	// ListByDeal devuelve el historial en orden cronológico (changed_at ASC).
	ListByDeal(dealID string) ([]*entity.DealHistory, error)
	// DeleteByDeal descarta el historial completo de un negocio (solo al
	// eliminar el negocio).
	DeleteByDeal(dealID string) error
}
