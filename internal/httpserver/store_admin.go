package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-platform/internal/domain"
	"storefront-platform/internal/images"
)

func (h *handlers) adminListProducts(c *gin.Context) {
	// Unlike the storefront listing, drafts and archived products are
	// included here.
	products, err := h.deps.Products.ListByStore(c.Request.Context(), currentStore(c).ID)
	if err != nil {
		h.logger.Printf("http: admin list products err=%v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *handlers) adminUpsertProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	product.StoreID = currentStore(c).ID
	if id := c.Param("id"); id != "" {
		product.ID = id
	}
	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Slug) == "" {
		badRequest(c, "name and slug required")
		return
	}
	if product.Status == "" {
		product.Status = domain.ProductStatusDraft
	}

	saved, err := h.deps.Products.Upsert(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": saved})
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	if err := h.deps.Products.Delete(c.Request.Context(), currentStore(c).ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *handlers) adminListDiscounts(c *gin.Context) {
	discounts, err := h.deps.Discounts.ListByStore(c.Request.Context(), currentStore(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": discounts})
}

func (h *handlers) adminCreateDiscount(c *gin.Context) {
	var dc domain.DiscountCode
	if err := c.ShouldBindJSON(&dc); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	dc.StoreID = currentStore(c).ID
	dc.Code = strings.ToUpper(strings.TrimSpace(dc.Code))
	if dc.Code == "" {
		badRequest(c, "code required")
		return
	}
	switch dc.Type {
	case domain.DiscountTypePercentage, domain.DiscountTypeFixed:
	default:
		badRequest(c, "type must be percentage or fixed")
		return
	}
	if dc.Value <= 0 {
		badRequest(c, "value must be positive")
		return
	}

	saved, err := h.deps.Discounts.Create(c.Request.Context(), dc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"discount": saved})
}

func (h *handlers) adminDeleteDiscount(c *gin.Context) {
	if err := h.deps.Discounts.Delete(c.Request.Context(), currentStore(c).ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *handlers) adminListOrders(c *gin.Context) {
	orders, err := h.deps.Orders.ListByStore(c.Request.Context(), currentStore(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *handlers) adminListReviews(c *gin.Context) {
	reviews, err := h.deps.Reviews.ListAll(c.Request.Context(), currentStore(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type moderateReviewRequest struct {
	Status string `json:"status"`
}

func (h *handlers) adminModerateReview(c *gin.Context) {
	var req moderateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.deps.Reviews.Moderate(c.Request.Context(), currentStore(c), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *handlers) adminUploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "image file required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "unreadable image file")
		return
	}
	defer file.Close()

	url, err := h.deps.Uploader.Upload(c.Request.Context(), currentStore(c).Slug, file)
	if err != nil {
		if err == images.ErrNotConfigured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads not configured"})
			return
		}
		h.logger.Printf("http: image upload err=%v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
