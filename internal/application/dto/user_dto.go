package dto

import "time"

// CreateUserRequest entrada de la vía privilegiada de creación de usuarios
// (solo admin). Password/PasswordConfirm son de solo escritura; el usuario
// creado queda verificado de inmediato.
type CreateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Role            string `json:"role"` // "Admin" | "User" (case-insensitive)
	Establecimiento string `json:"establecimiento"`
	Avatar          string `json:"avatar"`
}

// UpdateUserRequest entrada para actualizar un usuario (solo admin).
// Password vacío = no cambiar la contraseña.
type UpdateUserRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Password        string  `json:"password"`
	PasswordConfirm string  `json:"passwordConfirm"`
	Role            *string `json:"role"`
	Establecimiento *string `json:"establecimiento"`
	Avatar          *string `json:"avatar"`
}

// UserResponse salida de un usuario (sin datos sensibles).
type UserResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Role                  string    `json:"role"`
	Establecimiento       string    `json:"establecimiento,omitempty"`
	EstablecimientoNombre string    `json:"establecimiento_nombre,omitempty"`
	Verified              bool      `json:"verified"`
	Avatar                string    `json:"avatar,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
