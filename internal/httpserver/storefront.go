package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogsvc "storefront-platform/internal/service/catalog"
	reviewsvc "storefront-platform/internal/service/review"
)

func (h *handlers) getStore(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"store": currentStore(c)})
}

func (h *handlers) listProducts(c *gin.Context) {
	filter := catalogsvc.ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}
	if !catalogsvc.ValidSort(filter.Sort) {
		badRequest(c, "unknown sort order")
		return
	}

	products, err := h.deps.Catalog.List(c.Request.Context(), currentStore(c), filter)
	if err != nil {
		h.logger.Printf("http: list products err=%v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *handlers) getProduct(c *gin.Context) {
	product, err := h.deps.Catalog.GetBySlug(c.Request.Context(), currentStore(c), c.Param("productSlug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *handlers) listReviews(c *gin.Context) {
	store := currentStore(c)
	product, err := h.deps.Catalog.GetBySlug(c.Request.Context(), store, c.Param("productSlug"))
	if err != nil {
		respondError(c, err)
		return
	}
	reviews, err := h.deps.Reviews.ListApproved(c.Request.Context(), store, product.ID)
	if err != nil {
		h.logger.Printf("http: list reviews err=%v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type createReviewRequest struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (h *handlers) createReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	store := currentStore(c)
	product, err := h.deps.Catalog.GetBySlug(c.Request.Context(), store, c.Param("productSlug"))
	if err != nil {
		respondError(c, err)
		return
	}

	review, err := h.deps.Reviews.Submit(c.Request.Context(), store, reviewsvc.SubmitInput{
		ProductID: product.ID,
		Author:    req.Author,
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}
