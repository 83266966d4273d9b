package entity

import "time"

// User representa una cuenta de la aplicación. Los usuarios se crean solo por
// la vía privilegiada de administración, que los deja verificados de inmediato.
type User struct {
	ID                    string
	Name                  string
	Email                 string
	PasswordHash          string
	Role                  string // "admin" | "user" (comparación case-insensitive)
	EstablecimientoID     string // vacío = sin asignación
	EstablecimientoNombre string // resuelto por expansión en lecturas
	Verified              bool
	Avatar                string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
