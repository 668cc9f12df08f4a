package entity

import "time"

// Branch representa una sucursal de la empresa. Se usa para asignar usuarios
// y para acotar la visibilidad de negocios de los gerentes.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
