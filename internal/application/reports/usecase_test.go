package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/reports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// stubReportRepo devuelve filas fijas, como si vinieran de la consulta SQL.
type stubReportRepo struct {
	totals   []repository.StatusTotalsResult
	activity []repository.TransitionActivityResult
}

func (r *stubReportRepo) GetStatusTotals(ctx context.Context, companyID string) ([]repository.StatusTotalsResult, error) {
	return r.totals, nil
}

func (r *stubReportRepo) GetTransitionActivity(ctx context.Context, companyID string, from, to time.Time) ([]repository.TransitionActivityResult, error) {
	return r.activity, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Los agregados de la empresa son la suma de las filas, incluyendo etapas en cero.
func TestPipelineSummary_Agregados(t *testing.T) {
	repo := &stubReportRepo{totals: []repository.StatusTotalsResult{
		{StatusID: "s1", StatusName: "Prospecto", OrderIndex: 0, DealCount: 2, TotalValue: dec("1500.00"), WeightedValue: dec("300.00")},
		{StatusID: "s2", StatusName: "Contactado", OrderIndex: 1, DealCount: 0, TotalValue: decimal.Zero, WeightedValue: decimal.Zero},
		{StatusID: "s3", StatusName: "Propuesta", OrderIndex: 2, DealCount: 1, TotalValue: dec("2000.00"), WeightedValue: dec("1500.00")},
	}}
	uc := reports.NewReportUseCase(repo)

	summary, err := uc.PipelineSummary(context.Background(), "co")
	require.NoError(t, err)
	require.Len(t, summary.Statuses, 3)

	assert.Equal(t, 3, summary.TotalDeals)
	assert.True(t, summary.TotalValue.Equal(dec("3500.00")),
		"valor total = %s", summary.TotalValue)
	assert.True(t, summary.ForecastValue.Equal(dec("1800.00")),
		"forecast ponderado = %s", summary.ForecastValue)

	// La etapa vacía se conserva en el reporte.
	assert.Equal(t, "s2", summary.Statuses[1].StatusID)
	assert.Zero(t, summary.Statuses[1].DealCount)
}

func TestPipelineSummary_SinEtapas(t *testing.T) {
	uc := reports.NewReportUseCase(&stubReportRepo{})
	summary, err := uc.PipelineSummary(context.Background(), "co")
	require.NoError(t, err)
	assert.Empty(t, summary.Statuses)
	assert.Zero(t, summary.TotalDeals)
	assert.True(t, summary.TotalValue.IsZero())
}

func TestTransitionActivity_RangoInvalido(t *testing.T) {
	uc := reports.NewReportUseCase(&stubReportRepo{})
	now := time.Now()

	_, err := uc.TransitionActivity(context.Background(), "co", now, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rango vacío")

	_, err = uc.TransitionActivity(context.Background(), "co", now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rango invertido")
}

func TestTransitionActivity_AgrupaPorEtapaDestino(t *testing.T) {
	repo := &stubReportRepo{activity: []repository.TransitionActivityResult{
		{ToStatusID: "s2", StatusName: "Contactado", Transitions: 5, DistinctDeals: 4},
		{ToStatusID: "s3", StatusName: "Propuesta", Transitions: 2, DistinctDeals: 2},
	}}
	uc := reports.NewReportUseCase(repo)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	report, err := uc.TransitionActivity(context.Background(), "co", from, to)
	require.NoError(t, err)
	require.Len(t, report.Activity, 2)
	assert.Equal(t, 5, report.Activity[0].Transitions)
	assert.Equal(t, 4, report.Activity[0].DistinctDeals)
	assert.Equal(t, from, report.From)
	assert.Equal(t, to, report.To)
}
