package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// CalendarUseCase casos de uso para eventos de agenda.
type CalendarUseCase struct {
	repo repository.CalendarEventRepository
}

// NewCalendarUseCase construye el caso de uso.
func NewCalendarUseCase(repo repository.CalendarEventRepository) *CalendarUseCase {
	return &CalendarUseCase{repo: repo}
}

// Create crea un evento. EndsAt debe ser posterior a StartsAt.
func (uc *CalendarUseCase) Create(companyID, ownerID string, in dto.CreateEventRequest) (*dto.EventResponse, error) {
	if in.Title == "" || in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	event := &entity.CalendarEvent{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Title:       in.Title,
		Description: in.Description,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		OwnerID:     ownerID,
		ClientID:    in.ClientID,
		DealID:      in.DealID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(event); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// GetByID obtiene un evento por ID.
func (uc *CalendarUseCase) GetByID(id string) (*dto.EventResponse, error) {
	event, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	return toEventResponse(event), nil
}

// ListByRange devuelve los eventos de la empresa que se solapan con [from, to).
func (uc *CalendarUseCase) ListByRange(companyID string, from, to time.Time) (*dto.EventListResponse, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByCompanyAndRange(companyID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EventResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEventResponse(e))
	}
	return &dto.EventListResponse{Items: items}, nil
}

// Update actualiza un evento.
func (uc *CalendarUseCase) Update(id string, in dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		event.EndsAt = *in.EndsAt
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	if in.ClientID != nil {
		event.ClientID = *in.ClientID
	}
	if in.DealID != nil {
		event.DealID = *in.DealID
	}
	event.UpdatedAt = time.Now()
	if err := uc.repo.Update(event); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// Delete elimina un evento por ID.
func (uc *CalendarUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toEventResponse(e *entity.CalendarEvent) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		OwnerID:     e.OwnerID,
		ClientID:    e.ClientID,
		DealID:      e.DealID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
