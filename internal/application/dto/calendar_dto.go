package dto

import "time"

// CreateEventRequest entrada para crear un evento de agenda.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=300"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	ClientID    string    `json:"client_id" validate:"omitempty,uuid"`
	DealID      string    `json:"deal_id" validate:"omitempty,uuid"`
}

// UpdateEventRequest entrada para editar un evento. Campos nil no se modifican.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	ClientID    *string    `json:"client_id"`
	DealID      *string    `json:"deal_id"`
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	OwnerID     string    `json:"owner_id"`
	ClientID    string    `json:"client_id,omitempty"`
	DealID      string    `json:"deal_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventListResponse eventos de un rango de fechas.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
}
