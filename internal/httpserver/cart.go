package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "storefront-platform/internal/service/cart"
)

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.Carts.GetOrCreate(c.Request.Context(), currentStore(c), currentSession(c))
	if err != nil {
		h.logger.Printf("http: get cart err=%v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type addItemRequest struct {
	ProductID  string            `json:"productId"`
	Variations map[string]string `json:"variations"`
	Quantity   int               `json:"quantity"`
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.deps.Carts.AddItem(c.Request.Context(), currentStore(c), currentSession(c), cartsvc.AddItemInput{
		ProductID:  req.ProductID,
		Variations: req.Variations,
		Quantity:   req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	cart, err := h.deps.Carts.UpdateItemQuantity(c.Request.Context(), currentStore(c), currentSession(c), c.Param("itemId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *handlers) removeCartItem(c *gin.Context) {
	cart, err := h.deps.Carts.RemoveItem(c.Request.Context(), currentStore(c), currentSession(c), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type applyDiscountRequest struct {
	Code string `json:"code"`
}

func (h *handlers) applyDiscount(c *gin.Context) {
	var req applyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	cart, err := h.deps.Carts.ApplyDiscount(c.Request.Context(), currentStore(c), currentSession(c), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *handlers) removeDiscount(c *gin.Context) {
	cart, err := h.deps.Carts.RemoveDiscount(c.Request.Context(), currentStore(c), currentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}
