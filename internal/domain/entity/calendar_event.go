package entity

import "time"

// CalendarEvent representa un evento de agenda (reunión, llamada, seguimiento).
// ClientID y DealID son opcionales: un evento puede estar ligado a un cliente,
// a un negocio, a ambos o a ninguno.
type CalendarEvent struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	OwnerID     string
	ClientID    string
	DealID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
