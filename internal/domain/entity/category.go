package entity

import "time"

// Category agrupa productos para el filtro de la pantalla masiva (chips de categoría).
type Category struct {
	ID        string
	Name      string
	SortOrder int // orden de presentación; empate por nombre
	CreatedAt time.Time
}
