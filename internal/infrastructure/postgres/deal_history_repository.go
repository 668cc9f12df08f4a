package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.DealHistoryRepository = (*DealHistoryRepo)(nil)

// DealHistoryRepo implementación de DealHistoryRepository (usable con pool o tx).
// Solo insert, list y delete-por-negocio: el historial es append-only.
type DealHistoryRepo struct {
	q Querier
}

// NewDealHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealHistoryRepository(q Querier) *DealHistoryRepo {
	return &DealHistoryRepo{q: q}
}

// Create persiste una entrada de historial.
func (r *DealHistoryRepo) Create(h *entity.DealHistory) error {
	query := `
		INSERT INTO deal_history (id, deal_id, from_status_id, to_status_id, changed_by_id, notes, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.DealID, h.FromStatusID, h.ToStatusID, h.ChangedByID, h.Notes, h.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal history: %w", err)
	}
	return nil
}

// ListByDeal devuelve el historial del negocio en orden cronológico.
func (r *DealHistoryRepo) ListByDeal(dealID string) ([]*entity.DealHistory, error) {
	query := `
		SELECT id, deal_id, from_status_id, to_status_id, changed_by_id, notes, changed_at
		FROM deal_history WHERE deal_id = $1 ORDER BY changed_at ASC`
	rows, err := r.q.Query(context.Background(), query, dealID)
	if err != nil {
		return nil, fmt.Errorf("list deal history: %w", err)
	}
	defer rows.Close()
	var list []*entity.DealHistory
	for rows.Next() {
		var h entity.DealHistory
		if err := rows.Scan(&h.ID, &h.DealID, &h.FromStatusID, &h.ToStatusID, &h.ChangedByID, &h.Notes, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan deal history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// DeleteByDeal descarta el historial completo de un negocio.
func (r *DealHistoryRepo) DeleteByDeal(dealID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM deal_history WHERE deal_id = $1`, dealID)
	if err != nil {
		return fmt.Errorf("delete deal history: %w", err)
	}
	return nil
}
