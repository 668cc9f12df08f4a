package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDealRequest entrada para crear un negocio.
// Si StatusID viene vacío se usa la etapa con menor order_index de la empresa.
type CreateDealRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=300"`
	ClientID    string           `json:"client_id" validate:"required,uuid"`
	Value       decimal.Decimal  `json:"value"`
	Probability *decimal.Decimal `json:"probability"` // nil = 0
	StatusID    string           `json:"status_id" validate:"omitempty,uuid"`
	OwnerID     string           `json:"owner_id" validate:"omitempty,uuid"` // vacío = usuario del token
}

// UpdateDealRequest entrada para editar atributos de un negocio.
// El cambio de etapa NO va por aquí: usar POST /deals/:id/move.
type UpdateDealRequest struct {
	Title       *string          `json:"title"`
	ClientID    *string          `json:"client_id"`
	Value       *decimal.Decimal `json:"value"`
	Probability *decimal.Decimal `json:"probability"`
	OwnerID     *string          `json:"owner_id"`
}

// MoveDealRequest entrada para mover un negocio a otra etapa (drag & drop del Kanban).
type MoveDealRequest struct {
	StatusID string `json:"status_id" validate:"required,uuid"`
	Notes    string `json:"notes" validate:"omitempty,max=1000"`
}

// DealResponse salida de un negocio.
type DealResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Title       string          `json:"title"`
	ClientID    string          `json:"client_id"`
	Value       decimal.Decimal `json:"value"`
	Probability decimal.Decimal `json:"probability"`
	StatusID    string          `json:"status_id"`
	OwnerID     string          `json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DealListResponse listado paginado de negocios (ya filtrados por visibilidad).
type DealListResponse struct {
	Items []DealResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DealHistoryResponse una entrada del historial de transiciones.
type DealHistoryResponse struct {
	ID           string    `json:"id"`
	DealID       string    `json:"deal_id"`
	FromStatusID string    `json:"from_status_id"`
	ToStatusID   string    `json:"to_status_id"`
	ChangedByID  string    `json:"changed_by_id"`
	Notes        string    `json:"notes,omitempty"`
	ChangedAt    time.Time `json:"changed_at"`
}

// BoardColumnResponse una columna del Kanban: etapa + negocios visibles.
type BoardColumnResponse struct {
	Status PipelineStatusResponse `json:"status"`
	Deals  []DealResponse         `json:"deals"`
}

// BoardResponse el tablero completo, columnas en orden de order_index.
type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}
