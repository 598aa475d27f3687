package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-platform/internal/aiclient"
	"storefront-platform/internal/images"
	discountrepo "storefront-platform/internal/repository/discount"
	orderrepo "storefront-platform/internal/repository/order"
	productrepo "storefront-platform/internal/repository/product"
	cartsvc "storefront-platform/internal/service/cart"
	catalogsvc "storefront-platform/internal/service/catalog"
	checkoutsvc "storefront-platform/internal/service/checkout"
	customersvc "storefront-platform/internal/service/customer"
	reviewsvc "storefront-platform/internal/service/review"
	storesvc "storefront-platform/internal/service/store"
	superadminsvc "storefront-platform/internal/service/superadmin"
	"storefront-platform/internal/tenant"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	PlatformDomain string

	Stores     *storesvc.Service
	Catalog    *catalogsvc.Service
	Carts      *cartsvc.Service
	Checkout   *checkoutsvc.Service
	Customers  *customersvc.Service
	Reviews    *reviewsvc.Service
	SuperAdmin *superadminsvc.Service

	Products  productrepo.Repository
	Discounts discountrepo.Repository
	Orders    orderrepo.Repository

	AI       *aiclient.Client
	Uploader *images.Uploader
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-Id"},
		ExposeHeaders:   []string{"X-Session-Id"},
		MaxAge:          12 * time.Hour,
	}))

	h := &handlers{logger: logger, deps: deps}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	// Reserved segments are claimed as static platform routes so the
	// :storeSlug tree below never swallows them.
	for _, seg := range tenant.ReservedSegments() {
		seg := seg
		router.GET("/"+seg, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"platform": true, "page": seg})
		})
	}

	platform := router.Group("/platform/admin")
	{
		platform.POST("/login", h.platformLogin)
		authed := platform.Group("", h.requireSuperAdmin)
		authed.GET("/stores", h.platformListStores)
		authed.PATCH("/stores/:id/status", h.platformUpdateStoreStatus)
	}

	ai := router.Group("/ai", h.requireSuperAdmin)
	{
		ai.POST("/product-name", h.aiProductName)
		ai.POST("/product-description", h.aiProductDescription)
		ai.POST("/seo-keywords", h.aiSEOKeywords)
		ai.POST("/chat", h.aiChat)
	}

	store := router.Group("/:storeSlug", h.storeMiddleware, h.sessionMiddleware)
	{
		store.GET("", h.getStore)
		store.GET("/products", h.listProducts)
		store.GET("/products/:productSlug", h.getProduct)
		store.GET("/products/:productSlug/reviews", h.listReviews)
		store.POST("/products/:productSlug/reviews", h.createReview)

		store.GET("/cart", h.getCart)
		store.POST("/cart/items", h.addCartItem)
		store.PATCH("/cart/items/:itemId", h.updateCartItem)
		store.DELETE("/cart/items/:itemId", h.removeCartItem)
		store.POST("/cart/discount", h.applyDiscount)
		store.DELETE("/cart/discount", h.removeDiscount)

		store.GET("/checkout", h.checkoutCurrent)
		store.POST("/checkout/advance", h.checkoutAdvance)
		store.POST("/checkout/back", h.checkoutBack)
		store.POST("/checkout/order", h.placeOrder)
		store.GET("/orders/:number", h.getOrder)

		store.POST("/customers/signup", h.customerSignup)
		store.POST("/customers/login", h.customerLogin)
		store.POST("/customers/logout", h.customerLogout)
		store.GET("/customers/me", h.customerMe)

		admin := store.Group("/admin", h.requireStoreAdmin)
		admin.GET("/products", h.adminListProducts)
		admin.POST("/products", h.adminUpsertProduct)
		admin.PUT("/products/:id", h.adminUpsertProduct)
		admin.DELETE("/products/:id", h.adminDeleteProduct)
		admin.GET("/discounts", h.adminListDiscounts)
		admin.POST("/discounts", h.adminCreateDiscount)
		admin.DELETE("/discounts/:id", h.adminDeleteDiscount)
		admin.GET("/orders", h.adminListOrders)
		admin.GET("/reviews", h.adminListReviews)
		admin.PATCH("/reviews/:id/status", h.adminModerateReview)
		admin.POST("/images", h.adminUploadImage)
	}

	return router
}

// handlers groups route handlers around shared dependencies.
type handlers struct {
	logger *log.Logger
	deps   Deps
}
