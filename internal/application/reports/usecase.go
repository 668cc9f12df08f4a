// Package reports contiene los casos de uso de reportes del pipeline:
// resumen del embudo y actividad de transiciones.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ReportUseCase genera los reportes de lectura del pipeline.
//
// Fuente de datos: ReportRepository (consultas read-only). No accede
// directamente a las tablas de negocios; delega todo en el repositorio.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// PipelineSummary devuelve conteo, valor total y forecast ponderado por etapa,
// más los agregados de toda la empresa. Las etapas sin negocios aparecen con
// ceros (la columna vacía también cuenta).
func (uc *ReportUseCase) PipelineSummary(ctx context.Context, companyID string) (*dto.PipelineSummaryDTO, error) {
	rows, err := uc.reportRepo.GetStatusTotals(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("totales por etapa: %w", err)
	}

	statuses := make([]dto.StatusTotalsDTO, 0, len(rows))
	totalDeals := 0
	totalValue := decimal.Zero
	forecast := decimal.Zero
	for _, r := range rows {
		statuses = append(statuses, dto.StatusTotalsDTO{
			StatusID:      r.StatusID,
			StatusName:    r.StatusName,
			OrderIndex:    r.OrderIndex,
			DealCount:     r.DealCount,
			TotalValue:    r.TotalValue,
			WeightedValue: r.WeightedValue,
		})
		totalDeals += r.DealCount
		totalValue = totalValue.Add(r.TotalValue)
		forecast = forecast.Add(r.WeightedValue)
	}

	return &dto.PipelineSummaryDTO{
		Statuses:      statuses,
		TotalDeals:    totalDeals,
		TotalValue:    totalValue,
		ForecastValue: forecast,
		GeneratedAt:   time.Now(),
	}, nil
}

// TransitionActivity agrupa las entradas del historial por etapa destino en el
// rango [from, to]. No distingue etapas "cerradas": el pipeline no tiene
// estados terminales, el reporte tampoco.
func (uc *ReportUseCase) TransitionActivity(ctx context.Context, companyID string, from, to time.Time) (*dto.ActivityReportDTO, error) {
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.reportRepo.GetTransitionActivity(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("actividad de transiciones: %w", err)
	}
	activity := make([]dto.TransitionActivityDTO, 0, len(rows))
	for _, r := range rows {
		activity = append(activity, dto.TransitionActivityDTO{
			ToStatusID:    r.ToStatusID,
			StatusName:    r.StatusName,
			Transitions:   r.Transitions,
			DistinctDeals: r.DistinctDeals,
		})
	}
	return &dto.ActivityReportDTO{
		From:        from,
		To:          to,
		Activity:    activity,
		GeneratedAt: time.Now(),
	}, nil
}
