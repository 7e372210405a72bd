package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/aula-api/internal/models"
)

const studentsSchema = `CREATE TABLE IF NOT EXISTS students (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    apellido TEXT NOT NULL,
    materia TEXT NOT NULL,
    anio INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// EnsureSchema creates the students table when it does not exist yet.
func (r *StudentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, studentsSchema); err != nil {
		return fmt.Errorf("create students table: %w", err)
	}
	return nil
}

// List returns every student, newest id first.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, nombre, apellido, materia, anio, created_at FROM students ORDER BY id DESC`
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Create inserts a new student record and fills in its id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	const query = `INSERT INTO students (nombre, apellido, materia, anio, created_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, student.Nombre, student.Apellido, student.Materia, student.Anio, student.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create student: last insert id: %w", err)
	}
	student.ID = id
	return nil
}
