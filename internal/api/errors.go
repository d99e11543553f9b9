package api

import (
	"errors"
	"net/http"

	"donation_system/internal/ledger" // Core error taxonomy

	"github.com/gin-gonic/gin" // Gin web framework
)

// respondLedgerError maps core error types onto HTTP responses. Storage
// failures fall through to a generic 500; nothing is retried here.
func respondLedgerError(c *gin.Context, err error) {
	var (
		validation   ledger.ValidationError
		notFound     ledger.NotFoundError
		insufficient ledger.InsufficientFundsError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validation.Reason})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": insufficient.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFound.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
	}
}
