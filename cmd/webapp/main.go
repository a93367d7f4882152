package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"techreads/internal/api"
	"techreads/internal/auth"
	"techreads/internal/badge"
	"techreads/internal/books"
	"techreads/internal/cart"
	"techreads/internal/checkout"
	"techreads/internal/orders"
	"techreads/internal/session"
	"techreads/internal/store"
	"techreads/pkg/database"
	"techreads/pkg/utils"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := utils.Load()

	db := database.MustOpen(database.Config{Path: cfg.SessionDB})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	sessions := session.NewRepo(db)
	stores := store.NewRegistry()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Badge fan-out. The TCP tap carries every user's events and is
	// unauthenticated; bind it to localhost or set TECHREADS_SYNC_ADDR
	// to empty to disable it.
	hub := badge.NewHub()
	var tcpSrv *badge.Server
	if cfg.SyncAddr != "" {
		tcpSrv = badge.NewServer(cfg.SyncAddr, hub)
	}

	// Every new store broadcasts its mutations to the hub.
	stores.OnNew(func(userID string, s *store.Store) {
		s.Subscribe(func(ev store.Event) {
			hub.Broadcast(userID, badge.FromStore(userID, ev))
		})
	})

	// Optional redis mirror so badge counts survive a restart.
	var mirror store.Mirror
	if cfg.RedisAddr != "" {
		rm := store.NewRedisMirror(cfg.RedisAddr)
		if err := rm.Ping(context.Background()); err != nil {
			log.WithError(err).Warn("redis unreachable, badge mirror disabled")
		} else {
			mirror = rm
			log.Infof("badge mirror enabled at %s", cfg.RedisAddr)
		}
	}
	if mirror != nil {
		stores.OnNew(func(userID string, s *store.Store) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if snap, err := mirror.Load(ctx, userID); err == nil && snap != nil {
				s.Restore(*snap)
			}
			cancel()

			s.Subscribe(func(ev store.Event) {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := mirror.Save(ctx, userID, s.Snapshot()); err != nil {
					log.WithError(err).Debug("badge mirror save failed")
				}
			})
		})
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "api": cfg.APIBaseURL})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"api":         cfg.APIBaseURL,
			"session_db":  cfg.SessionDB,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	guard := &auth.Guard{Sessions: sessions, Stores: stores, Cookie: cfg.CookieName}

	authHandler := auth.NewHandler(client, sessions, stores, guard, cfg.CookieName)
	authHandler.RegisterRoutes(router)

	bookHandler := books.NewHandler(client, guard)
	bookHandler.RegisterPublicRoutes(router)

	// Protected screens
	protected := router.Group("/")
	protected.Use(guard.Middleware())

	// badge stream is per session: each socket only sees its own user
	protected.GET("/ws", badge.WSHandler(hub, auth.UserID))

	bookHandler.RegisterRoutes(protected)
	cart.NewHandler(client, guard).RegisterRoutes(protected)
	checkout.NewHandler(client, guard).RegisterRoutes(protected)
	orders.NewHandler(client, guard).RegisterRoutes(protected)

	// Back-office
	admin := router.Group("/admin")
	admin.Use(guard.Middleware())

	books.NewAdminHandler(client, guard).RegisterRoutes(admin)
	orders.NewAdminHandler(client, guard).RegisterRoutes(admin)

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	if tcpSrv != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tcpSrv.Run(); err != nil {
				errCh <- err
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("webapp listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Errorf("server error: %v", err)
	}

	log.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown error: %v", err)
	}
	if tcpSrv != nil {
		if err := tcpSrv.Close(); err != nil {
			log.Errorf("tcp shutdown error: %v", err)
		}
	}

	wg.Wait()
	log.Info("servers stopped")
}
