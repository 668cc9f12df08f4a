package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes/leads.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. Si trae email, guarda de duplicado por (company, email).
func (uc *ClientUseCase) Create(companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Email != "" {
		existing, _ := uc.repo.GetByCompanyAndEmail(companyID, in.Email)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		BranchID:  in.BranchID,
		Name:      in.Name,
		Email:     in.Email,
		Phones:    in.Phones,
		Source:    in.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// Update actualiza un cliente. Las observaciones no se editan por aquí (append-only vía AddObservation).
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		client.Name = *in.Name
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.BranchID != nil {
		client.BranchID = *in.BranchID
	}
	if in.Phones != nil {
		client.Phones = *in.Phones
	}
	if in.Source != nil {
		client.Source = *in.Source
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// AddObservation añade una nota al cliente (append-only, nunca se reordena).
func (uc *ClientUseCase) AddObservation(id, authorID, text string) (*dto.ClientResponse, error) {
	if text == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	now := time.Now()
	client.Observations = append(client.Observations, entity.ClientObservation{
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: now,
	})
	client.UpdatedAt = now
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes por empresa con paginación.
func (uc *ClientUseCase) List(companyID string, limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Search busca clientes por nombre (coincidencia parcial).
func (uc *ClientUseCase) Search(companyID, name string, limit int) (*dto.ClientListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.repo.SearchByName(companyID, name, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: limit}}, nil
}

// Delete elimina un cliente por ID.
func (uc *ClientUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:           c.ID,
		CompanyID:    c.CompanyID,
		BranchID:     c.BranchID,
		Name:         c.Name,
		Email:        c.Email,
		Phones:       c.Phones,
		Observations: c.Observations,
		Source:       c.Source,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
