package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-platform/internal/domain"
	cartsvc "storefront-platform/internal/service/cart"
	checkoutsvc "storefront-platform/internal/service/checkout"
	customersvc "storefront-platform/internal/service/customer"
	reviewsvc "storefront-platform/internal/service/review"
	superadminsvc "storefront-platform/internal/service/superadmin"
)

// respondError maps service errors onto HTTP status codes. Anything
// unrecognized is a 500 with a generic body; the concrete error goes to the
// log at the call site, never to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, customersvc.ErrInvalidCredentials),
		errors.Is(err, customersvc.ErrInvalidToken),
		errors.Is(err, superadminsvc.ErrInvalidCredentials),
		errors.Is(err, superadminsvc.ErrInvalidSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, cartsvc.ErrVariationRequired),
		errors.Is(err, cartsvc.ErrInvalidDiscount),
		errors.Is(err, checkoutsvc.ErrWrongStep),
		errors.Is(err, checkoutsvc.ErrEmptyCart),
		errors.Is(err, reviewsvc.ErrInvalidRating),
		errors.Is(err, reviewsvc.ErrInvalidStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
