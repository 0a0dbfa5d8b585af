package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pricingdomain "github.com/antarlabs/antar/internal/pricing/domain"
	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	quotedomain "github.com/antarlabs/antar/internal/quote/domain"
	"github.com/antarlabs/antar/pkg/db/pagination"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondList(c *gin.Context, data any, pageInfo *pagination.PageInfo) {
	if pageInfo == nil {
		c.JSON(http.StatusOK, gin.H{"data": data})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "page_info": pageInfo})
}

var errInvalidRequest = errors.New("invalid request body")

func invalidRequestError() error { return errInvalidRequest }

// AbortWithError maps domain sentinel errors onto HTTP statuses.
func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case isValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, ruledomain.ErrRuleNotFound),
		errors.Is(err, quotedomain.ErrQuoteNotFound):
		status = http.StatusNotFound
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, pricingdomain.ErrInvalidStrategy),
		errors.Is(err, pricingdomain.ErrInvalidPhase),
		errors.Is(err, pricingdomain.ErrInvalidDistanceClass),
		errors.Is(err, pricingdomain.ErrInvalidConditionClass),
		errors.Is(err, ruledomain.ErrInvalidID),
		errors.Is(err, ruledomain.ErrInvalidName),
		errors.Is(err, ruledomain.ErrInvalidMultiplier),
		errors.Is(err, ruledomain.ErrInvalidCap),
		errors.Is(err, ruledomain.ErrInvalidPriority),
		errors.Is(err, quotedomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func idempotencyKeyFromHeader(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("Idempotency-Key"))
}
