package repository

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CalendarEventRepository define el puerto de persistencia para CalendarEvent.
type CalendarEventRepository interface {
	Create(event *entity.CalendarEvent) error
	GetByID(id string) (*entity.CalendarEvent, error)
	// ListByCompanyAndRange devuelve eventos que se solapan con [from, to),
	// ordenados por starts_at ASC.
	ListByCompanyAndRange(companyID string, from, to time.Time) ([]*entity.CalendarEvent, error)
	Update(event *entity.CalendarEvent) error
	Delete(id string) error
}
