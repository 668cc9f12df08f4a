package entity

import "time"

// PipelineStatus representa una etapa del embudo de ventas (columna del Kanban).
// OrderIndex define el orden de izquierda a derecha; no necesita ser contiguo,
// los empates se resuelven por orden de inserción.
type PipelineStatus struct {
	ID         string
	CompanyID  string
	Name       string
	Color      string // hint de presentación (hex)
	OrderIndex int
	IsDefault  bool   // etapa semilla del sistema
	BranchID   string // opcional: etapa propia de una sucursal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
