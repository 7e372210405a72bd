package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/aula-api/internal/models"
	"github.com/noah-isme/aula-api/internal/service"
	appErrors "github.com/noah-isme/aula-api/pkg/errors"
	"github.com/noah-isme/aula-api/pkg/response"
)

const msgInvalidBody = "Cuerpo de la solicitud inválido"

type studentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
}

type rosterExporter interface {
	Roster(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
	exporter rosterExporter
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, exporter rosterExporter) *StudentHandler {
	return &StudentHandler{students: students, exporter: exporter}
}

// List godoc
// @Summary List students
// @Description Returns every student, most recently created first.
// @Tags Students
// @Produce json
// @Success 200 {array} models.Student
// @Failure 500 {object} response.ErrorBody
// @Router /api/students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} models.Student
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	// an empty body decodes to no fields at all and is reported as missing fields
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, msgInvalidBody))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Export godoc
// @Summary Export student roster
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exporter.Roster(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Data)
}
