package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-platform/internal/domain"
	checkoutsvc "storefront-platform/internal/service/checkout"
)

func (h *handlers) checkoutCurrent(c *gin.Context) {
	step, cart, err := h.deps.Checkout.Current(c.Request.Context(), currentStore(c), currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step, "cart": cart})
}

func (h *handlers) checkoutAdvance(c *gin.Context) {
	step, err := h.deps.Checkout.Advance(c.Request.Context(), currentStore(c), currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

func (h *handlers) checkoutBack(c *gin.Context) {
	step, err := h.deps.Checkout.Back(c.Request.Context(), currentStore(c), currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

type placeOrderRequest struct {
	Email           string              `json:"email"`
	ShippingAddress domain.OrderAddress `json:"shippingAddress"`
	BillingAddress  domain.OrderAddress `json:"billingAddress"`
}

func (h *handlers) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	order, err := h.deps.Checkout.PlaceOrder(c.Request.Context(), currentStore(c), currentSession(c), checkoutsvc.PlaceOrderInput{
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
	})
	if err != nil {
		h.logger.Printf("http: place order err=%v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.deps.Checkout.GetOrder(c.Request.Context(), currentStore(c), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
