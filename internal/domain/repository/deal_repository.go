package repository

import "github.com/jhoicas/crm-api/internal/domain/entity"

// DealRepository define el puerto de persistencia para Deal (negocios).
type DealRepository interface {
	Create(deal *entity.Deal) error
	GetByID(id string) (*entity.Deal, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Deal, error)
	Update(deal *entity.Deal) error
	Delete(id string) error
	// CountByStatus cuenta negocios que referencian la etapa; guarda de
	// integridad referencial para la eliminación de etapas.
	CountByStatus(statusID string) (int, error)
}
