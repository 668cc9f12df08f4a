package dto

import "time"

// CreatePipelineStatusRequest entrada para crear una etapa del pipeline.
type CreatePipelineStatusRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
	OrderIndex int    `json:"order_index"`
	BranchID   string `json:"branch_id" validate:"omitempty,uuid"`
}

// UpdatePipelineStatusRequest entrada para editar una etapa. Campos nil no se modifican.
type UpdatePipelineStatusRequest struct {
	Name       *string `json:"name"`
	Color      *string `json:"color"`
	OrderIndex *int    `json:"order_index"`
}

// PipelineStatusResponse salida de una etapa.
type PipelineStatusResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	OrderIndex int       `json:"order_index"`
	IsDefault  bool      `json:"is_default"`
	BranchID   string    `json:"branch_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
