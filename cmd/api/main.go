package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storelib/internal/cache"
	"storelib/internal/config"
	"storelib/internal/db"
	"storelib/internal/httpserver"
	"storelib/internal/metrics"
	authorrepo "storelib/internal/repository/author"
	bookrepo "storelib/internal/repository/book"
	borrowrepo "storelib/internal/repository/borrow"
	cartrepo "storelib/internal/repository/cart"
	categoryrepo "storelib/internal/repository/category"
	customerrepo "storelib/internal/repository/customer"
	memberrepo "storelib/internal/repository/member"
	orderrepo "storelib/internal/repository/order"
	productrepo "storelib/internal/repository/product"
	publisherrepo "storelib/internal/repository/publisher"
	cartsvc "storelib/internal/service/cart"
	catalogsvc "storelib/internal/service/catalog"
	checkoutsvc "storelib/internal/service/checkout"
	customersvc "storelib/internal/service/customer"
	lendingsvc "storelib/internal/service/lending"
	librarysvc "storelib/internal/service/library"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var productCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc, closeCache, err := cache.NewRedis(ctx, cfg.RedisAddr, "storelib:")
		if err != nil {
			logger.Printf("redis unavailable addr=%s, product cache disabled: %v", cfg.RedisAddr, err)
		} else {
			productCache = rc
			defer closeCache()
		}
	}

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	authorRepo := authorrepo.NewPostgres(dbpool)
	publisherRepo := publisherrepo.NewPostgres(dbpool)
	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	memberRepo := memberrepo.NewPostgres(dbpool)
	borrowRepo := borrowrepo.NewPostgres(dbpool)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc:    customersvc.New(customerRepo),
		CatalogSvc:     catalogsvc.New(categoryRepo, productRepo, productCache, cfg.CacheTTL, logger),
		CartSvc:        cartsvc.New(cartRepo, productRepo),
		CheckoutSvc:    checkoutsvc.New(cartRepo, orderRepo),
		LibrarySvc:     librarysvc.New(authorRepo, publisherRepo, bookRepo, logger),
		LendingSvc:     lendingsvc.New(memberRepo, bookRepo, borrowRepo),
		Metrics:        metrics.New(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
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
