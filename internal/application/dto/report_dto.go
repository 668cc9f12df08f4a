package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusTotalsDTO totales de una etapa del pipeline.
type StatusTotalsDTO struct {
	StatusID      string          `json:"status_id"`
	StatusName    string          `json:"status_name"`
	OrderIndex    int             `json:"order_index"`
	DealCount     int             `json:"deal_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	WeightedValue decimal.Decimal `json:"weighted_value"`
}

// PipelineSummaryDTO resumen del embudo: totales por etapa + agregados.
type PipelineSummaryDTO struct {
	Statuses      []StatusTotalsDTO `json:"statuses"`
	TotalDeals    int               `json:"total_deals"`
	TotalValue    decimal.Decimal   `json:"total_value"`
	ForecastValue decimal.Decimal   `json:"forecast_value"` // Σ valor * probabilidad
	GeneratedAt   time.Time         `json:"generated_at"`
}

// TransitionActivityDTO transiciones hacia una etapa en el período.
type TransitionActivityDTO struct {
	ToStatusID    string `json:"to_status_id"`
	StatusName    string `json:"status_name"`
	Transitions   int    `json:"transitions"`
	DistinctDeals int    `json:"distinct_deals"`
}

// ActivityReportDTO reporte de actividad del pipeline en un rango de fechas.
type ActivityReportDTO struct {
	From        time.Time               `json:"from"`
	To          time.Time               `json:"to"`
	Activity    []TransitionActivityDTO `json:"activity"`
	GeneratedAt time.Time               `json:"generated_at"`
}
