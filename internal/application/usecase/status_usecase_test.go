package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// stubStatusRepo fake en memoria del repositorio de etapas.
type stubStatusRepo struct {
	statuses map[string]*entity.PipelineStatus
	deleted  []string
}

func (r *stubStatusRepo) Create(s *entity.PipelineStatus) error {
	r.statuses[s.ID] = s
	return nil
}

func (r *stubStatusRepo) GetByID(id string) (*entity.PipelineStatus, error) {
	return r.statuses[id], nil
}

func (r *stubStatusRepo) ListByCompany(companyID string) ([]*entity.PipelineStatus, error) {
	var out []*entity.PipelineStatus
	for _, s := range r.statuses {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubStatusRepo) Update(s *entity.PipelineStatus) error {
	r.statuses[s.ID] = s
	return nil
}

func (r *stubStatusRepo) Delete(id string) error {
	delete(r.statuses, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// stubDealCounter implementa DealRepository solo para CountByStatus; el resto
// no se usa en estos tests.
type stubDealCounter struct {
	countByStatus map[string]int
}

func (r *stubDealCounter) Create(*entity.Deal) error          { return nil }
func (r *stubDealCounter) GetByID(string) (*entity.Deal, error) { return nil, nil }
func (r *stubDealCounter) ListByCompany(string, int, int) ([]*entity.Deal, error) {
	return nil, nil
}
func (r *stubDealCounter) Update(*entity.Deal) error { return nil }
func (r *stubDealCounter) Delete(string) error       { return nil }
func (r *stubDealCounter) CountByStatus(statusID string) (int, error) {
	return r.countByStatus[statusID], nil
}

func newStatusEnv(counts map[string]int) (*usecase.PipelineStatusUseCase, *stubStatusRepo) {
	repo := &stubStatusRepo{statuses: map[string]*entity.PipelineStatus{
		"ocupada": {ID: "ocupada", CompanyID: "co", Name: "Propuesta"},
		"vacia":   {ID: "vacia", CompanyID: "co", Name: "Descartada"},
	}}
	return usecase.NewPipelineStatusUseCase(repo, &stubDealCounter{countByStatus: counts}), repo
}

// Una etapa con negocios no se puede eliminar y el estado queda intacto.
func TestStatusDelete_EtapaConNegocios_Conflicto(t *testing.T) {
	uc, repo := newStatusEnv(map[string]int{"ocupada": 3})

	err := uc.Delete("ocupada")
	assert.ErrorIs(t, err, domain.ErrStatusInUse)
	assert.Contains(t, repo.statuses, "ocupada", "la etapa no debe borrarse")
	assert.Empty(t, repo.deleted)
}

func TestStatusDelete_EtapaSinNegocios_Eliminada(t *testing.T) {
	uc, repo := newStatusEnv(map[string]int{"ocupada": 3})

	require.NoError(t, uc.Delete("vacia"))
	assert.NotContains(t, repo.statuses, "vacia")
	assert.Equal(t, []string{"vacia"}, repo.deleted)
}

func TestStatusDelete_EtapaInexistente(t *testing.T) {
	uc, _ := newStatusEnv(nil)
	err := uc.Delete("no-existe")
	assert.ErrorIs(t, err, domain.ErrStatusNotFound)
}

func TestStatusCreate_NombreRequerido(t *testing.T) {
	uc, _ := newStatusEnv(nil)
	_, err := uc.Create("co", dto.CreatePipelineStatusRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStatusUpdate_CambiaOrden(t *testing.T) {
	uc, repo := newStatusEnv(nil)
	order := 7
	out, err := uc.Update("vacia", dto.UpdatePipelineStatusRequest{OrderIndex: &order})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 7, out.OrderIndex)
	assert.Equal(t, 7, repo.statuses["vacia"].OrderIndex)
}
