package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo implementación de DealRepository (usable con pool o tx).
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

const dealColumns = `id, company_id, title, client_id, value, probability, status_id, owner_id, created_at, updated_at`

// Create persiste un nuevo negocio.
func (r *DealRepo) Create(deal *entity.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		deal.ID, deal.CompanyID, deal.Title, deal.ClientID, deal.Value, deal.Probability,
		deal.StatusID, deal.OwnerID, deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *DealRepo) GetByID(id string) (*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	var d entity.Deal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.CompanyID, &d.Title, &d.ClientID, &d.Value, &d.Probability,
		&d.StatusID, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return &d, nil
}

// ListByCompany lista negocios de la empresa. limit <= 0 lista todos
// (el tablero Kanban carga la empresa completa).
func (r *DealRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE company_id = $1 ORDER BY updated_at DESC`
	args := []any{companyID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		var d entity.Deal
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.Title, &d.ClientID, &d.Value, &d.Probability,
			&d.StatusID, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza un negocio.
func (r *DealRepo) Update(deal *entity.Deal) error {
	query := `
		UPDATE deals SET title = $2, client_id = $3, value = $4, probability = $5,
			status_id = $6, owner_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		deal.ID, deal.Title, deal.ClientID, deal.Value, deal.Probability,
		deal.StatusID, deal.OwnerID, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	return nil
}

// Delete elimina un negocio por ID.
func (r *DealRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	return nil
}

// CountByStatus cuenta negocios que referencian la etapa.
func (r *DealRepo) CountByStatus(statusID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM deals WHERE status_id = $1`, statusID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count deals by status: %w", err)
	}
	return count, nil
}
