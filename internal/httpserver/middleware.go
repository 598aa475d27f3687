package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-platform/internal/domain"
)

const (
	ctxStoreKey    = "store"
	ctxSessionKey  = "sessionID"
	ctxCustomerKey = "customer"

	sessionHeader = "X-Session-Id"
)

// storeMiddleware loads the tenant for every storefront route. Unknown slugs
// auto-provision a demo store, so this never 404s.
func (h *handlers) storeMiddleware(c *gin.Context) {
	slug := strings.ToLower(c.Param("storeSlug"))
	store, err := h.deps.Stores.ResolveOrProvision(c.Request.Context(), slug)
	if err != nil {
		h.logger.Printf("http: resolve store slug=%s err=%v", slug, err)
		respondError(c, err)
		c.Abort()
		return
	}
	c.Set(ctxStoreKey, *store)
	c.Next()
}

// sessionMiddleware establishes the cart session id. A client that does not
// send one gets a minted UUID, echoed back so it can be replayed.
func (h *handlers) sessionMiddleware(c *gin.Context) {
	sessionID := strings.TrimSpace(c.GetHeader(sessionHeader))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Header(sessionHeader, sessionID)
	c.Set(ctxSessionKey, sessionID)
	c.Next()
}

// requireSuperAdmin guards the platform surfaces with a session JWT.
func (h *handlers) requireSuperAdmin(c *gin.Context) {
	claims, err := h.deps.SuperAdmin.Validate(bearerToken(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set("adminEmail", claims.Email)
	c.Next()
}

// requireStoreAdmin admits the store owner (customer token) or a platform
// operator (super-admin JWT).
func (h *handlers) requireStoreAdmin(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if claims, err := h.deps.SuperAdmin.Validate(token); err == nil {
		c.Set("adminEmail", claims.Email)
		c.Next()
		return
	}

	store := currentStore(c)
	customer, err := h.deps.Customers.LookupByToken(c.Request.Context(), store.ID, token)
	if err != nil || store.OwnerID == "" || customer.ID != store.OwnerID {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set(ctxCustomerKey, *customer)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func currentStore(c *gin.Context) domain.Store {
	store, _ := c.MustGet(ctxStoreKey).(domain.Store)
	return store
}

func currentSession(c *gin.Context) string {
	return c.GetString(ctxSessionKey)
}
