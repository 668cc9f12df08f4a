package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal representa un negocio (oportunidad de venta) asociado a un cliente.
// StatusID siempre referencia un PipelineStatus existente; un negocio nunca
// queda en un estado indefinido.
type Deal struct {
	ID          string
	CompanyID   string
	Title       string
	ClientID    string
	Value       decimal.Decimal // valor estimado, >= 0
	Probability decimal.Decimal // probabilidad de cierre, en [0,1]
	StatusID    string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
