package domain

import "strings"

// Roles de la aplicación. La comparación es case-insensitive: los registros
// históricos guardan "Admin"/"User" con mayúscula inicial.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsAdminRole indica si el rol corresponde a un administrador distrital.
func IsAdminRole(role string) bool {
	return strings.EqualFold(role, RoleAdmin)
}

// Scope representa la visibilidad del usuario autenticado sobre las
// colecciones por establecimiento (DEC, activaciones, protocolos).
//
// Es el único punto de decisión de scoping: todos los caminos de lectura y
// escritura lo consumen igual, en lugar de re-implementar la regla por pantalla.
type Scope struct {
	IsAdmin         bool
	Establecimiento string // ID del establecimiento asignado; vacío = sin asignación
}

// NewScope construye el scope a partir de la identidad de la sesión.
func NewScope(role, establecimiento string) Scope {
	return Scope{
		IsAdmin:         IsAdminRole(role),
		Establecimiento: establecimiento,
	}
}

// FilterEstablecimiento devuelve el establecimiento al que debe restringirse
// una lectura. Los admin ven todo salvo que pidan explícitamente un
// establecimiento; los usuarios con asignación quedan forzados a la suya.
//
// Un usuario no-admin sin establecimiento asignado lee global: comportamiento
// heredado del sistema de registro, aceptado tal cual.
func (s Scope) FilterEstablecimiento(requested string) string {
	if s.IsAdmin {
		return requested
	}
	return s.Establecimiento
}

// StampEstablecimiento devuelve el establecimiento con el que debe persistirse
// una fila nueva. Para no-admin se ignora lo que venga del formulario y se
// sella el establecimiento del autor.
func (s Scope) StampEstablecimiento(submitted string) string {
	if s.IsAdmin {
		return submitted
	}
	return s.Establecimiento
}
