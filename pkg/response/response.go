package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
)

// Envelope is the error contract shared by every endpoint.
type Envelope struct {
	Error *appErrors.Error `json:"error"`
}

// JSON sends body as-is. Endpoints define their own success shapes.
func JSON(c *gin.Context, status int, body interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, body)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, body interface{}) {
	JSON(c, http.StatusOK, body)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, body interface{}) {
	JSON(c, http.StatusCreated, body)
}

// Error sends an error response converting the error to the common structure.
// The original error is attached to the gin context so the access logger can
// record the cause that the client never sees.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if err != nil {
		_ = c.Error(err)
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// Abort sends an error response and stops the middleware chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// Attachment streams a rendered file download.
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
