package dto

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CreateClientRequest entrada para crear un cliente/lead.
type CreateClientRequest struct {
	Name     string               `json:"name" validate:"required,min=1,max=200"`
	Email    string               `json:"email" validate:"omitempty,email"`
	BranchID string               `json:"branch_id" validate:"omitempty,uuid"`
	Phones   []entity.ClientPhone `json:"phones"`
	Source   string               `json:"source"`
}

// UpdateClientRequest entrada para actualizar un cliente. Campos nil no se modifican.
type UpdateClientRequest struct {
	Name     *string               `json:"name"`
	Email    *string               `json:"email" validate:"omitempty,email"`
	BranchID *string               `json:"branch_id"`
	Phones   *[]entity.ClientPhone `json:"phones"`
	Source   *string               `json:"source"`
}

// AddObservationRequest entrada para añadir una observación a un cliente.
type AddObservationRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID           string                     `json:"id"`
	CompanyID    string                     `json:"company_id"`
	BranchID     string                     `json:"branch_id,omitempty"`
	Name         string                     `json:"name"`
	Email        string                     `json:"email"`
	Phones       []entity.ClientPhone       `json:"phones"`
	Observations []entity.ClientObservation `json:"observations"`
	Source       string                     `json:"source,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
