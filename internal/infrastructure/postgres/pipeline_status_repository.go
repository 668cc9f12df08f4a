package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.PipelineStatusRepository = (*PipelineStatusRepo)(nil)

// PipelineStatusRepo implementación de PipelineStatusRepository (usable con pool o tx).
type PipelineStatusRepo struct {
	q Querier
}

// NewPipelineStatusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPipelineStatusRepository(q Querier) *PipelineStatusRepo {
	return &PipelineStatusRepo{q: q}
}

const statusColumns = `id, company_id, name, color, order_index, is_default, branch_id, created_at, updated_at`

// Create persiste una nueva etapa.
func (r *PipelineStatusRepo) Create(status *entity.PipelineStatus) error {
	query := `
		INSERT INTO pipeline_statuses (` + statusColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		status.ID, status.CompanyID, status.Name, status.Color, status.OrderIndex,
		status.IsDefault, nullIfEmpty(status.BranchID), status.CreatedAt, status.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pipeline status: %w", err)
	}
	return nil
}

// GetByID obtiene una etapa por ID.
func (r *PipelineStatusRepo) GetByID(id string) (*entity.PipelineStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM pipeline_statuses WHERE id = $1`
	s, err := scanStatus(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pipeline status: %w", err)
	}
	return s, nil
}

// ListByCompany devuelve las etapas ordenadas por order_index ASC, created_at ASC.
func (r *PipelineStatusRepo) ListByCompany(companyID string) ([]*entity.PipelineStatus, error) {
	query := `
		SELECT ` + statusColumns + ` FROM pipeline_statuses
		WHERE company_id = $1 ORDER BY order_index ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list pipeline statuses: %w", err)
	}
	defer rows.Close()
	var list []*entity.PipelineStatus
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pipeline status: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza una etapa.
func (r *PipelineStatusRepo) Update(status *entity.PipelineStatus) error {
	query := `
		UPDATE pipeline_statuses SET name = $2, color = $3, order_index = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		status.ID, status.Name, status.Color, status.OrderIndex, status.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pipeline status: %w", err)
	}
	return nil
}

// Delete elimina una etapa por ID. La guarda de "etapa en uso" vive en el
// caso de uso, no aquí.
func (r *PipelineStatusRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM pipeline_statuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pipeline status: %w", err)
	}
	return nil
}

// scanStatus lee una fila de pipeline_statuses (branch_id puede ser NULL).
func scanStatus(row pgx.Row) (*entity.PipelineStatus, error) {
	var s entity.PipelineStatus
	var branchID *string
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Color, &s.OrderIndex,
		&s.IsDefault, &branchID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		s.BranchID = *branchID
	}
	return &s, nil
}

// nullIfEmpty convierte "" a NULL para columnas opcionales con FK.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
