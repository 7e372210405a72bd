package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/aula-api/pkg/errors"
)

// ErrorBody is the payload written for every handled failure.
type ErrorBody struct {
	Error string `json:"error" example:"Faltan campos obligatorios: nombre, apellido, materia, anio"`
}

// JSON sends data as the response body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Attachment streams a rendered file as a download.
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// Error converts err into its status code and an {"error": "..."} body
// carrying the public message; the wrapped cause stays in the request log.
// Upstream errors are relayed verbatim.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var upstream *appErrors.UpstreamError
	if errors.As(err, &upstream) {
		contentType := upstream.ContentType
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		c.Data(upstream.Status, contentType, upstream.Body)
		return
	}

	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
}
