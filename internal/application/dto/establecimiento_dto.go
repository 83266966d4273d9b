package dto

import "time"

// CreateEstablecimientoRequest entrada para crear un establecimiento.
type CreateEstablecimientoRequest struct {
	Nombre    string `json:"nombre"`
	RBD       int    `json:"rbd"`
	Direccion string `json:"direccion"`
}

// UpdateEstablecimientoRequest entrada para actualizar (campos opcionales).
type UpdateEstablecimientoRequest struct {
	Nombre    *string `json:"nombre"`
	RBD       *int    `json:"rbd"`
	Direccion *string `json:"direccion"`
}

// EstablecimientoResponse salida de un establecimiento.
type EstablecimientoResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	RBD       int       `json:"rbd"`
	Direccion string    `json:"direccion"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EstablecimientoListResponse lista paginada de establecimientos.
type EstablecimientoListResponse struct {
	Items []EstablecimientoResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
