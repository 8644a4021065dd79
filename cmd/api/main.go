package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/subosito/gotenv"

	"manasa.shop/internal/admin"
	"manasa.shop/internal/counter"
	"manasa.shop/internal/dist"
	"manasa.shop/internal/handover"
	"manasa.shop/internal/httpapi"
	"manasa.shop/internal/obs"
	"manasa.shop/internal/stock"
	"manasa.shop/internal/store/pg"
)

var version = "0.3.0"

func main() {
	_ = gotenv.Load()

	obs.SetLevel(os.Getenv("BACKOFFICE_LOG_LEVEL"))
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("BACKOFFICE_COMMIT"))
	log := obs.Logger()

	secret := os.Getenv("BACKOFFICE_AUTH_SECRET")
	if secret == "" {
		log.Fatal("BACKOFFICE_AUTH_SECRET is required")
	}

	// Without a DSN everything runs on the in-memory stores, which is enough
	// for local development against the real frontend.
	var (
		store      *pg.Store
		adminStore  admin.Store    = admin.NewMemoryStore()
		counterSt   counter.Store  = counter.NewMemoryStore()
		stockSt     stock.Store    = stock.NewMemoryStore()
		distSt      dist.Store     = dist.NewMemoryStore()
		handoverSt  handover.Store = handover.NewMemoryStore()
	)
	if dsn := os.Getenv("BACKOFFICE_PG_DSN"); dsn != "" {
		var err error
		store, err = pg.Open(dsn)
		if err != nil {
			log.WithError(err).Fatal("open database")
		}
		adminStore = store.Admin()
		counterSt = store.Counter()
		stockSt = store.Stock()
		distSt = store.Dist()
		handoverSt = store.Handover()
	} else {
		log.Warn("BACKOFFICE_PG_DSN not set, using in-memory stores")
	}

	adminSvc, err := admin.NewService(adminStore, []byte(secret))
	if err != nil {
		log.WithError(err).Fatal("admin service")
	}
	counterSvc, err := counter.NewService(counterSt)
	if err != nil {
		log.WithError(err).Fatal("counter service")
	}
	stockSvc, err := stock.NewService(stockSt)
	if err != nil {
		log.WithError(err).Fatal("stock service")
	}
	distSvc, err := dist.NewService(distSt)
	if err != nil {
		log.WithError(err).Fatal("dist service")
	}
	handoverSvc, err := handover.NewService(handoverSt)
	if err != nil {
		log.WithError(err).Fatal("handover service")
	}

	rp := httpapi.ReadyProbe{}
	if store != nil {
		rp.DB = store.DB()
	}
	api := httpapi.New(rp, httpapi.Services{
		Admin:    adminSvc,
		Counter:  counterSvc,
		Stock:    stockSvc,
		Dist:     distSvc,
		Handover: handoverSvc,
	}, httpapi.Config{
		Version:       version,
		RateBurst:     envInt("BACKOFFICE_RATE_BURST", 60),
		RatePerSecond: envInt("BACKOFFICE_RATE_PER_SECOND", 30),
		MaxBodyBytes:  int64(envInt("BACKOFFICE_MAX_BODY_BYTES", 1<<20)),
		CORSOrigins:   splitCSV(os.Getenv("BACKOFFICE_CORS_ORIGINS")),
	})

	addr := os.Getenv("BACKOFFICE_ADDR")
	if addr == "" {
		addr = ":4001"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.WithFields(map[string]any{"version": version, "addr": addr}).Info("starting backoffice api")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	if store != nil {
		_ = store.Close()
	}
	log.Info("stopped")
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
