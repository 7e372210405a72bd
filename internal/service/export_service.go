package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/aula-api/internal/models"
	appErrors "github.com/noah-isme/aula-api/pkg/errors"
	"github.com/noah-isme/aula-api/pkg/export"
)

// ExportFormat names a roster export encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"

	msgUnsupportedFormat = "Formato de exportación no soportado"
	rosterTitle          = "Listado de alumnos"
)

type rosterSource interface {
	List(ctx context.Context) ([]models.Student, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered roster ready to be sent as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the student roster into downloadable files.
type ExportService struct {
	students rosterSource
	csv      datasetRenderer
	pdf      datasetRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// pkg/export defaults.
func NewExportService(students rosterSource, csv, pdf datasetRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{students: students, csv: csv, pdf: pdf, logger: logger}
}

// ParseExportFormat normalises the format query value. Empty means CSV.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, msgUnsupportedFormat)
	}
}

// Roster renders every student, newest first, in the requested format.
func (s *ExportService) Roster(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	var (
		renderer    datasetRenderer
		contentType string
	)
	switch format {
	case ExportFormatCSV:
		renderer, contentType = s.csv, "text/csv; charset=utf-8"
	case ExportFormatPDF:
		renderer, contentType = s.pdf, "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, msgUnsupportedFormat)
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(rosterDataset(students))
	if err != nil {
		s.logger.Error("render roster export", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("students.%s", format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func rosterDataset(students []models.Student) export.Dataset {
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, map[string]string{
			"id":         strconv.FormatInt(st.ID, 10),
			"nombre":     st.Nombre,
			"apellido":   st.Apellido,
			"materia":    st.Materia,
			"anio":       strconv.Itoa(st.Anio),
			"created_at": formatExportTime(st.CreatedAt),
		})
	}
	return export.Dataset{
		Title: rosterTitle,
		Columns: []export.Column{
			{Key: "id", Label: "ID", Width: 0.6},
			{Key: "nombre", Label: "Nombre", Width: 1.4},
			{Key: "apellido", Label: "Apellido", Width: 1.4},
			{Key: "materia", Label: "Materia", Width: 1.4},
			{Key: "anio", Label: "Año", Width: 0.7},
			{Key: "created_at", Label: "Creado", Width: 1.6},
		},
		Rows: rows,
	}
}

func formatExportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
