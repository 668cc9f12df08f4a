package entity

import "time"

// Roles válidos para User. El orden refleja la jerarquía de visibilidad:
// admin y director ven todo, gerente ve sus sucursales, el resto solo lo propio.
const (
	RoleAdmin     = "admin"
	RoleDirector  = "director"
	RoleGerente   = "gerente"
	RoleVendedor  = "vendedor"
	RoleAsistente = "asistente"
)

// User representa un usuario del sistema (pertenece a una Company).
// BranchIDs son las sucursales a las que está asignado; un gerente solo ve
// negocios cuyos dueños compartan al menos una sucursal con él.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string   // ver constantes Role*
	BranchIDs    []string // sucursales asignadas
	Status       string   // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SharesBranchWith indica si ambos usuarios comparten al menos una sucursal.
func (u *User) SharesBranchWith(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	for _, a := range u.BranchIDs {
		for _, b := range other.BranchIDs {
			if a == b {
				return true
			}
		}
	}
	return false
}
