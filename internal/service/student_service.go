package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/aula-api/internal/models"
	appErrors "github.com/noah-isme/aula-api/pkg/errors"
)

const (
	msgMissingFields = "Faltan campos obligatorios: nombre, apellido, materia, anio"
	msgYearNotInt    = "El año debe ser un número entero"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	Nombre   string `json:"nombre" validate:"required" example:"Ana"`
	Apellido string `json:"apellido" validate:"required" example:"Gómez"`
	Materia  string `json:"materia" validate:"required" example:"Física"`
	Anio     Year   `json:"anio" swaggertype:"integer" example:"2024"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// List returns all students, newest first.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	start := time.Now()
	students, err := s.repo.List(ctx)
	s.metrics.ObserveDBQuery("students_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list students")
	}
	return students, nil
}

// Create validates the payload and stores a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil || !req.Anio.Present() {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgMissingFields)
	}
	anio, err := req.Anio.Int()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgYearNotInt)
	}

	student := &models.Student{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Materia:  req.Materia,
		Anio:     anio,
	}
	start := time.Now()
	err = s.repo.Create(ctx, student)
	s.metrics.ObserveDBQuery("students_create", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create student")
	}

	s.metrics.IncStudentsCreated()
	s.logger.Info("student created", zap.Int64("id", student.ID), zap.String("materia", student.Materia))
	return student, nil
}
