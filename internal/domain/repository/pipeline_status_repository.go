package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// PipelineStatusRepository define el puerto de persistencia para PipelineStatus.
type PipelineStatusRepository interface {
	Create(status *entity.PipelineStatus) error
	GetByID(id string) (*entity.PipelineStatus, error)
	// ListByCompany devuelve las etapas ordenadas por order_index ASC y,
	// a igualdad de índice, por created_at ASC (orden de inserción estable).
	ListByCompany(companyID string) ([]*entity.PipelineStatus, error)
	Update(status *entity.PipelineStatus) error
	Delete(id string) error
}
