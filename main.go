package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festive-foliage/blocks"
	"festive-foliage/config"
	"festive-foliage/core"
	blocksapi "festive-foliage/handlers/api/blocks"
	"festive-foliage/handlers/api/decorations"
	"festive-foliage/handlers/websocket"
	"festive-foliage/metrics"
	appmiddleware "festive-foliage/middleware"
	"festive-foliage/moderation"
	"festive-foliage/stores"
	"festive-foliage/stores/document"
	"festive-foliage/tree"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type routerDeps struct {
	decorations     core.DecorationStore
	blocks          core.BlockStore
	authorizer      moderation.Authorizer
	publicBlockList bool
}

func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmiddleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Session-Id", "X-Forwarded-For", "X-Real-IP"},
		MaxAge:         86400,
	}))

	requireAdmin := appmiddleware.RequireAdmin(deps.authorizer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/decorations", func(r chi.Router) {
			r.Get("/", decorations.HandleList(deps.decorations, deps.authorizer))
			r.With(appmiddleware.Attribution).Post("/", decorations.HandleCreate(deps.decorations, deps.authorizer))
			r.Patch("/", decorations.HandleUpdate(deps.decorations))
			r.With(requireAdmin).Delete("/", decorations.HandleDelete(deps.decorations))
		})

		r.Route("/blocks", func(r chi.Router) {
			if deps.publicBlockList {
				r.Get("/", blocksapi.HandleList(deps.blocks))
			} else {
				r.With(requireAdmin).Get("/", blocksapi.HandleList(deps.blocks))
			}
			r.With(requireAdmin).Post("/", blocksapi.HandleCreate(deps.blocks))
			r.With(requireAdmin).Delete("/", blocksapi.HandleDelete(deps.blocks))
		})
	})

	r.Handle("/metrics", metrics.Handler())

	return r
}

func waitForShutdown(srv *http.Server, hub *websocket.Hub) {
	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	s := <-signalC
	logrus.WithField("signal", s.String()).Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3002", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := config.Load()
	authorizer := moderation.NewStaticAuthorizer(cfg.AdminUser, cfg.AdminPass)
	if !authorizer.Configured() {
		logrus.Warn("ADMIN_USER or ADMIN_PASS not set, admin routes will answer 500")
	}

	gateway := document.NewGateway(stores.GetMedium(cfg))
	hub := websocket.NewHub()

	blockStore := blocks.NewStore(gateway.Blocks(), hub)
	decorationStore := tree.NewStore(gateway.Decorations(), blockStore, hub)

	r := setupRouter(routerDeps{
		decorations:     decorationStore,
		blocks:          blockStore,
		authorizer:      authorizer,
		publicBlockList: cfg.PublicBlockList,
	})
	r.Handle("/socket.io/", hub.Server().ServeHandler(nil))

	srv := &http.Server{Addr: *listenAddress, Handler: r}

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	logrus.Debug("Server is running in the background")
	waitForShutdown(srv, hub)
}
