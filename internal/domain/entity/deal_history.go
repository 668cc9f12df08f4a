package entity

import "time"

// DealHistory registra un cambio de etapa de un negocio. Append-only: una vez
// escrita, la entrada nunca se muta ni se reordena; se interpreta en orden de
// ChangedAt. Se crea exactamente una por transición efectiva (nunca para
// movimientos a la misma etapa).
type DealHistory struct {
	ID           string
	DealID       string
	FromStatusID string
	ToStatusID   string
	ChangedByID  string
	Notes        string // opcional
	ChangedAt    time.Time
}
