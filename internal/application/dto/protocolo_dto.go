package dto

import "time"

// CreateProtocoloRequest entrada para crear una entrada del catálogo de protocolos.
type CreateProtocoloRequest struct {
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion"`
	Establecimiento string `json:"establecimiento"` // ID; vacío = catálogo global
}

// UpdateProtocoloRequest entrada para actualizar (campos opcionales).
type UpdateProtocoloRequest struct {
	Nombre          *string `json:"nombre"`
	Descripcion     *string `json:"descripcion"`
	Establecimiento *string `json:"establecimiento"`
}

// ProtocoloResponse salida de una entrada del catálogo.
type ProtocoloResponse struct {
	ID                    string    `json:"id"`
	Nombre                string    `json:"nombre"`
	Descripcion           string    `json:"descripcion"`
	Establecimiento       string    `json:"establecimiento,omitempty"`
	EstablecimientoNombre string    `json:"establecimiento_nombre,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ProtocoloListResponse lista paginada del catálogo.
type ProtocoloListResponse struct {
	Items []ProtocoloResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateActivacionRequest entrada para registrar activaciones mensuales de un
// protocolo. El establecimiento enviado solo lo respeta un admin; para el
// resto se sella el del autor.
type CreateActivacionRequest struct {
	Meses           string `json:"meses"` // "YYYY-MM"
	Cantidad        int    `json:"cantidad"`
	Protocolo       string `json:"protocolo"` // ID del catálogo
	Establecimiento string `json:"establecimiento"`
}

// UpdateActivacionRequest entrada para actualizar una activación.
type UpdateActivacionRequest struct {
	Meses           *string `json:"meses"`
	Cantidad        *int    `json:"cantidad"`
	Protocolo       *string `json:"protocolo"`
	Establecimiento *string `json:"establecimiento"`
}

// ActivacionResponse salida de una activación con relaciones resueltas.
type ActivacionResponse struct {
	ID                    string    `json:"id"`
	Meses                 string    `json:"meses"`
	Cantidad              int       `json:"cantidad"`
	Protocolo             string    `json:"protocolo"`
	ProtocoloNombre       string    `json:"protocolo_nombre,omitempty"`
	Establecimiento       string    `json:"establecimiento,omitempty"`
	EstablecimientoNombre string    `json:"establecimiento_nombre,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ActivacionListResponse lista paginada de activaciones.
type ActivacionListResponse struct {
	Items []ActivacionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
