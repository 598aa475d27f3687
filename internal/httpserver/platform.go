package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-platform/internal/aiclient"
)

type platformLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) platformLogin(c *gin.Context) {
	var req platformLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	token, err := h.deps.SuperAdmin.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": 24 * 60 * 60})
}

func (h *handlers) platformListStores(c *gin.Context) {
	stores, err := h.deps.Stores.List(c.Request.Context())
	if err != nil {
		h.logger.Printf("http: list stores err=%v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores, "count": len(stores)})
}

type storeStatusRequest struct {
	Status string `json:"status"`
}

func (h *handlers) platformUpdateStoreStatus(c *gin.Context) {
	var req storeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	id := c.Param("id")
	if err := h.deps.Stores.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	store, err := h.deps.Stores.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": store})
}

type aiPromptRequest struct {
	Idea        string `json:"idea"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Details     string `json:"details"`
}

func (h *handlers) aiProductName(c *gin.Context) {
	var req aiPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	name, err := h.deps.AI.GenerateProductName(c.Request.Context(), req.Idea)
	if err != nil {
		h.aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

func (h *handlers) aiProductDescription(c *gin.Context) {
	var req aiPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	description, err := h.deps.AI.GenerateProductDescription(c.Request.Context(), req.Name, req.Details)
	if err != nil {
		h.aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": description})
}

func (h *handlers) aiSEOKeywords(c *gin.Context) {
	var req aiPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	keywords, err := h.deps.AI.GenerateSEOKeywords(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

type aiChatRequest struct {
	StoreName      string             `json:"storeName"`
	CatalogSummary string             `json:"catalogSummary"`
	Messages       []aiclient.Message `json:"messages"`
}

func (h *handlers) aiChat(c *gin.Context) {
	var req aiChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	reply, err := h.deps.AI.ChatWithCustomer(c.Request.Context(), req.StoreName, req.CatalogSummary, req.Messages)
	if err != nil {
		h.aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// aiError surfaces upstream AI failures as a bad gateway; no retries.
func (h *handlers) aiError(c *gin.Context, err error) {
	h.logger.Printf("http: ai request err=%v", err)
	if err == aiclient.ErrNotConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai not configured"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "ai request failed"})
}
