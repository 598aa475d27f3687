package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"storefront-platform/internal/aiclient"
	"storefront-platform/internal/cache"
	"storefront-platform/internal/config"
	"storefront-platform/internal/db"
	"storefront-platform/internal/httpserver"
	"storefront-platform/internal/images"
	"storefront-platform/internal/mailer"
	cartrepo "storefront-platform/internal/repository/cart"
	custrepo "storefront-platform/internal/repository/customer"
	discountrepo "storefront-platform/internal/repository/discount"
	orderrepo "storefront-platform/internal/repository/order"
	productrepo "storefront-platform/internal/repository/product"
	reviewrepo "storefront-platform/internal/repository/review"
	storerepo "storefront-platform/internal/repository/store"
	tokenrepo "storefront-platform/internal/repository/token"
	cartsvc "storefront-platform/internal/service/cart"
	catalogsvc "storefront-platform/internal/service/catalog"
	checkoutsvc "storefront-platform/internal/service/checkout"
	customersvc "storefront-platform/internal/service/customer"
	reviewsvc "storefront-platform/internal/service/review"
	storesvc "storefront-platform/internal/service/store"
	superadminsvc "storefront-platform/internal/service/superadmin"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var storeCache *cache.StoreCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		storeCache = cache.NewStoreCache(redisClient)
		logger.Printf("store cache enabled via redis at %s", cfg.RedisAddr)
	}

	storeRepo := storerepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	discountRepo := discountrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	customerRepo := custrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	reviewRepo := reviewrepo.NewPostgres(dbpool)

	orderMailer := mailer.New(cfg.MailRelayURL, cfg.MailRelayToken, cfg.MailFrom, logger)

	storeService := storesvc.New(storeRepo, storeCache, logger)
	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo, discountRepo, logger)
	checkoutService := checkoutsvc.New(cartRepo, orderRepo, orderMailer, logger)
	customerService := customersvc.New(customerRepo, tokenRepo)
	reviewService := reviewsvc.New(reviewRepo, productRepo)
	superAdminService := superadminsvc.New(cfg.AdminCredentials, cfg.AdminJWTSecret)

	aiClient := aiclient.New(cfg.AIAPIURL, cfg.AIAPIToken, cfg.AIModel)

	uploader, err := images.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Fatalf("init image uploader: %v", err)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		PlatformDomain: cfg.PlatformDomain,
		Stores:         storeService,
		Catalog:        catalogService,
		Carts:          cartService,
		Checkout:       checkoutService,
		Customers:      customerService,
		Reviews:        reviewService,
		SuperAdmin:     superAdminService,
		Products:       productRepo,
		Discounts:      discountRepo,
		Orders:         orderRepo,
		AI:             aiClient,
		Uploader:       uploader,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
