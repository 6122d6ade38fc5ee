package rest

import (
	"errors"
	"net/http"

	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"

	"github.com/gin-gonic/gin"
)

// StatusFor maps a reason code onto the HTTP status the handlers answer with.
func StatusFor(code reasoncodes.ReasonCode) int {
	switch code {
	case reasoncodes.ErrValidation, reasoncodes.ErrNoFieldsProvided:
		return http.StatusBadRequest
	case reasoncodes.ErrNotFound:
		return http.StatusNotFound
	case reasoncodes.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as {"error": message[, "details": ...]} and aborts the chain.
func RespondError(c *gin.Context, err error) {
	var coded *reasoncodes.Error
	if !errors.As(err, &coded) {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": coded.Message}
	switch {
	case coded.Details != nil:
		body["details"] = coded.Details
	case coded.Code == reasoncodes.ErrStore && coded.Err != nil:
		body["details"] = coded.Err.Error()
	}

	if coded.Err != nil {
		_ = c.Error(coded.Err)
	}
	c.AbortWithStatusJSON(StatusFor(coded.Code), body)
}

// NotFoundHandler answers unknown routes.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}

// RecoveryHandler turns a recovered panic into the generic 500 body.
func RecoveryHandler(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
