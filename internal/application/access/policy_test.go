package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/access"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// Fixture: tres vendedores en dos sucursales. Ana y Beto comparten la sucursal
// norte; Carla trabaja sola en la sur.
func fixture() (owners map[string]*entity.User, deals []*entity.Deal) {
	owners = map[string]*entity.User{
		"ana":   {ID: "ana", CompanyID: "co", Role: entity.RoleVendedor, BranchIDs: []string{"norte"}},
		"beto":  {ID: "beto", CompanyID: "co", Role: entity.RoleVendedor, BranchIDs: []string{"norte", "centro"}},
		"carla": {ID: "carla", CompanyID: "co", Role: entity.RoleVendedor, BranchIDs: []string{"sur"}},
	}
	deals = []*entity.Deal{
		{ID: "d-ana", CompanyID: "co", OwnerID: "ana"},
		{ID: "d-beto", CompanyID: "co", OwnerID: "beto"},
		{ID: "d-carla", CompanyID: "co", OwnerID: "carla"},
	}
	return owners, deals
}

func ids(deals []*entity.Deal) []string {
	out := make([]string, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.ID)
	}
	return out
}

func TestFilterDeals_AdminVeTodo(t *testing.T) {
	owners, deals := fixture()
	admin := &entity.User{ID: "root", CompanyID: "co", Role: entity.RoleAdmin}

	visible := access.FilterDeals(admin, deals, owners)
	assert.Equal(t, []string{"d-ana", "d-beto", "d-carla"}, ids(visible))
}

func TestFilterDeals_DirectorVeTodo(t *testing.T) {
	owners, deals := fixture()
	director := &entity.User{ID: "dir", CompanyID: "co", Role: entity.RoleDirector}

	visible := access.FilterDeals(director, deals, owners)
	assert.Len(t, visible, 3)
}

// El gerente de la sucursal norte ve los negocios de Ana y Beto, no los de Carla.
func TestFilterDeals_GerentePorSucursalCompartida(t *testing.T) {
	owners, deals := fixture()
	gerente := &entity.User{ID: "g1", CompanyID: "co", Role: entity.RoleGerente, BranchIDs: []string{"norte"}}

	visible := access.FilterDeals(gerente, deals, owners)
	assert.Equal(t, []string{"d-ana", "d-beto"}, ids(visible))
}

// Un gerente sin sucursales asignadas no ve nada.
func TestFilterDeals_GerenteSinSucursales(t *testing.T) {
	owners, deals := fixture()
	gerente := &entity.User{ID: "g2", CompanyID: "co", Role: entity.RoleGerente}

	visible := access.FilterDeals(gerente, deals, owners)
	assert.Empty(t, visible)
}

func TestFilterDeals_VendedorSoloLoPropio(t *testing.T) {
	owners, deals := fixture()

	visible := access.FilterDeals(owners["beto"], deals, owners)
	require.Len(t, visible, 1)
	assert.Equal(t, "d-beto", visible[0].ID)
}

func TestFilterDeals_AsistenteSoloLoPropio(t *testing.T) {
	owners, deals := fixture()
	asistente := &entity.User{ID: "asis", CompanyID: "co", Role: entity.RoleAsistente}

	visible := access.FilterDeals(asistente, deals, owners)
	assert.Empty(t, visible, "el asistente no es dueño de ningún negocio del fixture")
}

// Dueño desconocido (nil en el mapa): el gerente no lo ve, el admin sí.
func TestCanSeeDeal_DuenoDesconocido(t *testing.T) {
	deal := &entity.Deal{ID: "d-x", CompanyID: "co", OwnerID: "fantasma"}
	gerente := &entity.User{ID: "g1", CompanyID: "co", Role: entity.RoleGerente, BranchIDs: []string{"norte"}}
	admin := &entity.User{ID: "root", CompanyID: "co", Role: entity.RoleAdmin}

	assert.False(t, access.CanSeeDeal(gerente, deal, nil))
	assert.True(t, access.CanSeeDeal(admin, deal, nil))
}
