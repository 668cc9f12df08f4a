package dto

import "time"

// RegisterRequest entrada para registro (auth): email, password, company_id.
type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	CompanyID string   `json:"company_id" validate:"required,uuid"`
	Name      string   `json:"name" validate:"omitempty,max=200"`
	Role      string   `json:"role" validate:"omitempty,oneof=admin director gerente vendedor asistente"`
	BranchIDs []string `json:"branch_ids" validate:"omitempty,dive,uuid"`
}

// UpdateUserRequest entrada para actualizar un usuario (solo admin).
// Campos nil no se modifican.
type UpdateUserRequest struct {
	Name      *string   `json:"name"`
	Role      *string   `json:"role" validate:"omitempty,oneof=admin director gerente vendedor asistente"`
	BranchIDs *[]string `json:"branch_ids"`
	Status    *string   `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	BranchIDs []string  `json:"branch_ids"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
