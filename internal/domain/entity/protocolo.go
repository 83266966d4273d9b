package entity

import "time"

// Protocolo es una entrada del catálogo de protocolos de actuación.
// Puede ser global (EstablecimientoID vacío) o propio de un establecimiento.
type Protocolo struct {
	ID                    string
	Nombre                string
	Descripcion           string
	EstablecimientoID     string // vacío = catálogo global
	EstablecimientoNombre string // resuelto por expansión en lecturas
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ActivacionProtocolo registra cuántas veces se activó un protocolo en un
// establecimiento durante un mes. Meses usa la forma "YYYY-MM".
type ActivacionProtocolo struct {
	ID                    string
	Meses                 string
	Cantidad              int // >= 1
	ProtocoloID           string
	ProtocoloNombre       string // resuelto por expansión en lecturas
	EstablecimientoID     string
	EstablecimientoNombre string // resuelto por expansión en lecturas
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
