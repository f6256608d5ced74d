package api

import (
	"errors"
	"log"
	"net/http"

	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service error kinds to HTTP responses. Unclassified
// errors are logged and surfaced as a generic internal error without detail.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   *services.ValidationError
		statusErr       *services.InvalidStatusError
		unitErr         *services.InvalidUnitError
		mismatchErr     *services.UnitMismatchError
		notFoundErr     *services.RecipeNotFoundError
		referenceErr    *services.InvalidReferenceError
		duplicateErr    *services.DuplicateBatchError
		timeoutErr      *services.TransactionTimeoutError
		insufficientErr *services.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.As(err, &statusErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": statusErr.Error()})
	case errors.As(err, &unitErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": unitErr.Error()})
	case errors.As(err, &mismatchErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": mismatchErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusConflict, gin.H{"error": duplicateErr.Error()})
	case errors.As(err, &referenceErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": referenceErr.Error()})
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        "insufficient stock",
			"insufficient": insufficientErr.Shortfalls,
		})
	case errors.As(err, &timeoutErr):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": timeoutErr.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
