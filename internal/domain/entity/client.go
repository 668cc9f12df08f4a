package entity

import "time"

// ClientPhone teléfono de contacto de un cliente.
type ClientPhone struct {
	Number string `json:"number"`
	Label  string `json:"label"` // movil, oficina, whatsapp...
}

// ClientObservation nota libre sobre un cliente. Append-only a nivel de UI.
type ClientObservation struct {
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Client representa un cliente o lead del CRM.
// Phones y Observations se persisten como JSONB en la misma fila.
type Client struct {
	ID           string
	CompanyID    string
	BranchID     string // opcional: sucursal que lo atiende
	Name         string
	Email        string
	Phones       []ClientPhone
	Observations []ClientObservation
	Source       string // origen del lead: referido, web, campaña...
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
