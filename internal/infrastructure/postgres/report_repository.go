package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only de reportes del pipeline. Las agregaciones
// se hacen en SQL; el use case solo da formato al resultado.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de consultas de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetStatusTotals devuelve conteo, valor total y forecast ponderado por etapa.
// El LEFT JOIN garantiza que etapas sin negocios aparezcan con ceros.
func (r *ReportRepo) GetStatusTotals(ctx context.Context, companyID string) ([]repository.StatusTotalsResult, error) {
	query := `
		SELECT s.id, s.name, s.order_index,
		       COUNT(d.id),
		       COALESCE(SUM(d.value), 0),
		       COALESCE(SUM(d.value * d.probability), 0)
		FROM pipeline_statuses s
		LEFT JOIN deals d ON d.status_id = s.id
		WHERE s.company_id = $1
		GROUP BY s.id, s.name, s.order_index
		ORDER BY s.order_index ASC, s.name ASC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("query status totals: %w", err)
	}
	defer rows.Close()
	var results []repository.StatusTotalsResult
	for rows.Next() {
		var res repository.StatusTotalsResult
		if err := rows.Scan(
			&res.StatusID, &res.StatusName, &res.OrderIndex,
			&res.DealCount, &res.TotalValue, &res.WeightedValue,
		); err != nil {
			return nil, fmt.Errorf("scan status totals: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// GetTransitionActivity agrupa las entradas de historial por etapa destino
// dentro del rango [startDate, endDate).
func (r *ReportRepo) GetTransitionActivity(
	ctx context.Context,
	companyID string,
	startDate, endDate time.Time,
) ([]repository.TransitionActivityResult, error) {
	query := `
		SELECT h.to_status_id, s.name,
		       COUNT(*),
		       COUNT(DISTINCT h.deal_id)
		FROM deal_history h
		JOIN pipeline_statuses s ON s.id = h.to_status_id
		WHERE s.company_id = $1 AND h.changed_at >= $2 AND h.changed_at < $3
		GROUP BY h.to_status_id, s.name, s.order_index
		ORDER BY s.order_index ASC, s.name ASC`
	rows, err := r.q.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("query transition activity: %w", err)
	}
	defer rows.Close()
	var results []repository.TransitionActivityResult
	for rows.Next() {
		var res repository.TransitionActivityResult
		if err := rows.Scan(
			&res.ToStatusID, &res.StatusName, &res.Transitions, &res.DistinctDeals,
		); err != nil {
			return nil, fmt.Errorf("scan transition activity: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
