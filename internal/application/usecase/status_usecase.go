package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// PipelineStatusUseCase casos de uso CRUD para etapas del pipeline.
// La eliminación aplica la guarda de integridad referencial en la capa de
// aplicación: una etapa referenciada por algún negocio no se puede borrar.
type PipelineStatusUseCase struct {
	statusRepo repository.PipelineStatusRepository
	dealRepo   repository.DealRepository
}

// NewPipelineStatusUseCase construye el caso de uso.
func NewPipelineStatusUseCase(statusRepo repository.PipelineStatusRepository, dealRepo repository.DealRepository) *PipelineStatusUseCase {
	return &PipelineStatusUseCase{statusRepo: statusRepo, dealRepo: dealRepo}
}

// Create crea una etapa del pipeline.
func (uc *PipelineStatusUseCase) Create(companyID string, in dto.CreatePipelineStatusRequest) (*dto.PipelineStatusResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	status := &entity.PipelineStatus{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		Color:      in.Color,
		OrderIndex: in.OrderIndex,
		IsDefault:  false,
		BranchID:   in.BranchID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.statusRepo.Create(status); err != nil {
		return nil, err
	}
	return toPipelineStatusResponse(status), nil
}

// GetByID obtiene una etapa por ID.
func (uc *PipelineStatusUseCase) GetByID(id string) (*dto.PipelineStatusResponse, error) {
	status, err := uc.statusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, nil
	}
	return toPipelineStatusResponse(status), nil
}

// List devuelve las etapas de la empresa en orden de order_index.
func (uc *PipelineStatusUseCase) List(companyID string) ([]dto.PipelineStatusResponse, error) {
	list, err := uc.statusRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PipelineStatusResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toPipelineStatusResponse(s))
	}
	return items, nil
}

// Update actualiza nombre, color u orden de una etapa.
func (uc *PipelineStatusUseCase) Update(id string, in dto.UpdatePipelineStatusRequest) (*dto.PipelineStatusResponse, error) {
	status, err := uc.statusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		status.Name = *in.Name
	}
	if in.Color != nil {
		status.Color = *in.Color
	}
	if in.OrderIndex != nil {
		status.OrderIndex = *in.OrderIndex
	}
	status.UpdatedAt = time.Now()
	if err := uc.statusRepo.Update(status); err != nil {
		return nil, err
	}
	return toPipelineStatusResponse(status), nil
}

// Delete elimina una etapa solo si ningún negocio la referencia.
// Devuelve ErrStatusInUse sin mutar nada si hay negocios asociados.
func (uc *PipelineStatusUseCase) Delete(id string) error {
	status, err := uc.statusRepo.GetByID(id)
	if err != nil {
		return err
	}
	if status == nil {
		return domain.ErrStatusNotFound
	}
	count, err := uc.dealRepo.CountByStatus(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrStatusInUse
	}
	return uc.statusRepo.Delete(id)
}

func toPipelineStatusResponse(s *entity.PipelineStatus) *dto.PipelineStatusResponse {
	if s == nil {
		return nil
	}
	return &dto.PipelineStatusResponse{
		ID:         s.ID,
		CompanyID:  s.CompanyID,
		Name:       s.Name,
		Color:      s.Color,
		OrderIndex: s.OrderIndex,
		IsDefault:  s.IsDefault,
		BranchID:   s.BranchID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
