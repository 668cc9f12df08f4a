package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.CalendarEventRepository = (*CalendarEventRepo)(nil)

// CalendarEventRepo implementación del puerto CalendarEventRepository sobre PostgreSQL.
// client_id y deal_id son nullables en la tabla; en la entidad, vacío = sin vínculo.
type CalendarEventRepo struct {
	q Querier
}

// NewCalendarEventRepository construye el adaptador de persistencia para eventos.
func NewCalendarEventRepository(q Querier) *CalendarEventRepo {
	return &CalendarEventRepo{q: q}
}

const eventColumns = `id, company_id, title, description, starts_at, ends_at, owner_id, client_id, deal_id, created_at, updated_at`

// Create persiste un nuevo evento de agenda.
func (r *CalendarEventRepo) Create(event *entity.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.CompanyID, event.Title, event.Description,
		event.StartsAt, event.EndsAt, event.OwnerID,
		nullIfEmpty(event.ClientID), nullIfEmpty(event.DealID),
		event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID.
func (r *CalendarEventRepo) GetByID(id string) (*entity.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1`
	e, err := scanEvent(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calendar event: %w", err)
	}
	return e, nil
}

// ListByCompanyAndRange devuelve eventos que se solapan con [from, to),
// ordenados por fecha de inicio.
func (r *CalendarEventRepo) ListByCompanyAndRange(companyID string, from, to time.Time) ([]*entity.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + ` FROM calendar_events
		WHERE company_id = $1 AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()
	var list []*entity.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update actualiza un evento.
func (r *CalendarEventRepo) Update(event *entity.CalendarEvent) error {
	query := `
		UPDATE calendar_events SET title = $2, description = $3, starts_at = $4,
			ends_at = $5, owner_id = $6, client_id = $7, deal_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.Title, event.Description, event.StartsAt, event.EndsAt,
		event.OwnerID, nullIfEmpty(event.ClientID), nullIfEmpty(event.DealID),
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update calendar event: %w", err)
	}
	return nil
}

// Delete elimina un evento por ID.
func (r *CalendarEventRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*entity.CalendarEvent, error) {
	var e entity.CalendarEvent
	var clientID, dealID *string
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt,
		&e.OwnerID, &clientID, &dealID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if clientID != nil {
		e.ClientID = *clientID
	}
	if dealID != nil {
		e.DealID = *dealID
	}
	return &e, nil
}
