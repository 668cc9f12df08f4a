package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusTotalsResult resultado crudo de la consulta de totales por etapa.
// Lo produce la DB; el use case lo convierte en DTO.
type StatusTotalsResult struct {
	StatusID      string
	StatusName    string
	OrderIndex    int
	DealCount     int
	TotalValue    decimal.Decimal // suma de valores de los negocios en la etapa
	WeightedValue decimal.Decimal // suma de valor * probabilidad (forecast)
}

// TransitionActivityResult resultado crudo de la consulta de actividad:
// cuántas transiciones entraron a cada etapa en el período.
type TransitionActivityResult struct {
	ToStatusID    string
	StatusName    string
	Transitions   int
	DistinctDeals int
}

// ReportRepository define las consultas de lectura para reportes del pipeline.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// GetStatusTotals devuelve conteo, valor total y forecast ponderado por
	// etapa, incluyendo etapas sin negocios (COALESCE a cero).
	GetStatusTotals(ctx context.Context, companyID string) ([]StatusTotalsResult, error)

	// GetTransitionActivity agrupa las entradas de historial por etapa destino
	// en el rango de fechas dado.
	GetTransitionActivity(
		ctx context.Context,
		companyID string,
		startDate, endDate time.Time,
	) ([]TransitionActivityResult, error)
}
