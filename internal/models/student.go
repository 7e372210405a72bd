package models

import "time"

// Student is a row of the students table.
type Student struct {
	ID        int64     `db:"id" json:"id"`
	Nombre    string    `db:"nombre" json:"nombre"`
	Apellido  string    `db:"apellido" json:"apellido"`
	Materia   string    `db:"materia" json:"materia"`
	Anio      int       `db:"anio" json:"anio"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
