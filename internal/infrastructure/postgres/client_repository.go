package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
// Phones y Observations se guardan como JSONB en la misma fila.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, company_id, branch_id, name, email, phones, observations, source, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	phones, observations, err := marshalClientJSON(client)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		client.ID, client.CompanyID, nullIfEmpty(client.BranchID), client.Name, client.Email,
		phones, observations, client.Source, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByCompanyAndEmail obtiene un cliente por empresa y email.
func (r *ClientRepo) GetByCompanyAndEmail(companyID, email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE company_id = $1 AND email = $2`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, companyID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by email: %w", err)
	}
	return c, nil
}

// ListByCompany lista clientes de la empresa con paginación.
func (r *ClientRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	return collectClients(rows)
}

// SearchByName busca clientes por coincidencia parcial de nombre (ILIKE).
func (r *ClientRepo) SearchByName(companyID, name string, limit int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE company_id = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY name LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, companyID, name, limit)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()
	return collectClients(rows)
}

// Update actualiza un cliente (incluidos phones/observations completos).
func (r *ClientRepo) Update(client *entity.Client) error {
	phones, observations, err := marshalClientJSON(client)
	if err != nil {
		return err
	}
	query := `
		UPDATE clients SET branch_id = $2, name = $3, email = $4, phones = $5,
			observations = $6, source = $7, updated_at = $8
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		client.ID, nullIfEmpty(client.BranchID), client.Name, client.Email,
		phones, observations, client.Source, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func marshalClientJSON(client *entity.Client) (phones, observations []byte, err error) {
	phones, err = json.Marshal(client.Phones)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal phones: %w", err)
	}
	observations, err = json.Marshal(client.Observations)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal observations: %w", err)
	}
	return phones, observations, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var branchID *string
	var phones, observations []byte
	err := row.Scan(
		&c.ID, &c.CompanyID, &branchID, &c.Name, &c.Email,
		&phones, &observations, &c.Source, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		c.BranchID = *branchID
	}
	if len(phones) > 0 {
		if err := json.Unmarshal(phones, &c.Phones); err != nil {
			return nil, fmt.Errorf("unmarshal phones: %w", err)
		}
	}
	if len(observations) > 0 {
		if err := json.Unmarshal(observations, &c.Observations); err != nil {
			return nil, fmt.Errorf("unmarshal observations: %w", err)
		}
	}
	return &c, nil
}

func collectClients(rows pgx.Rows) ([]*entity.Client, error) {
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
