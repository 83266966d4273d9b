package entity

import "time"

// Establecimiento representa un establecimiento educacional del distrito
// (campus). El RBD es el identificador oficial chileno (Rol Base de Datos).
type Establecimiento struct {
	ID        string
	Nombre    string
	RBD       int
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
