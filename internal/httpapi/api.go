package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"manasa.shop/internal/admin"
	"manasa.shop/internal/audit"
	"manasa.shop/internal/counter"
	"manasa.shop/internal/dist"
	"manasa.shop/internal/handover"
	"manasa.shop/internal/obs"
	"manasa.shop/internal/stock"
)

// ReadyProbe checks readiness, typically a DB ping.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config tunes the HTTP surface.
type Config struct {
	Version       string
	MaxBodyBytes  int64
	RateBurst     int
	RatePerSecond int
	CORSOrigins   []string
}

func (c *Config) defaults() {
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 60
	}
	if c.RatePerSecond <= 0 {
		c.RatePerSecond = 30
	}
}

// Services are the domain dependencies of the API.
type Services struct {
	Admin    *admin.Service
	Counter  *counter.Service
	Stock    *stock.Service
	Dist     *dist.Service
	Handover *handover.Service
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	cfg        Config
	svc        Services
}

func New(rp ReadyProbe, svc Services, cfg Config) *API {
	cfg.defaults()
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		cfg:        cfg,
		svc:        svc,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// daily cash records
	a.mux.HandleFunc("/api/v1/counter/initialCount", a.handleInitialCount)
	a.mux.HandleFunc("/api/v1/counter/getInitial", a.handleGetInitial)
	a.mux.HandleFunc("/api/v1/counter/remCash", a.handleRemCash)
	a.mux.HandleFunc("/api/v1/counter/getRemainingCash", a.handleGetRemainingCash)
	a.mux.HandleFunc("/api/v1/counter/monthly-summary", a.handleMonthlySummary)
	a.mux.HandleFunc("/api/v1/counter/dataByRange", a.handleDataByRange)

	// stock entries and settlements
	a.mux.HandleFunc("/api/v1/stock/stockEntry", a.handleStockEntry)
	a.mux.HandleFunc("/api/v1/stock/allStocks", a.handleAllStocks)
	a.mux.HandleFunc("/api/v1/stock/updateStock/", a.handleUpdateStock)
	a.mux.HandleFunc("/api/v1/stock/deleteDist/", a.handleDeleteDist)
	a.mux.HandleFunc("/api/v1/stock/remAmount", a.handleRemAmount)
	a.mux.HandleFunc("/api/v1/stock/getRemAmount/", a.handleGetRemAmount)

	// distributor directory
	a.mux.HandleFunc("/api/v1/dist/createDist", a.handleCreateDist)
	a.mux.HandleFunc("/api/v1/dist/searchDist", a.handleSearchDist)

	// operator accounts
	a.mux.HandleFunc("/api/v1/admin/signin", a.handleSignin)
	a.mux.HandleFunc("/api/v1/admin/login", a.handleLogin)
	a.mux.HandleFunc("/api/v1/admin/resetPasswordRequest", a.handleResetPasswordRequest)
	a.mux.HandleFunc("/api/v1/admin/resetPassword", a.handleResetPassword)

	// voice handover log
	a.mux.HandleFunc("/api/v1/speech/createHandover", a.handleCreateHandover)
	a.mux.HandleFunc("/api/v1/speech/getHandover", a.handleGetHandover)
	a.mux.HandleFunc("/api/v1/speech/deleteHand/", a.handleDeleteHand)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "resource not found")
	})

	return a
}

// Handler assembles the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	h := a.withAuth(a.mux)
	h = MaxBodyBytes(h, a.cfg.MaxBodyBytes)
	h = RateLimit(h, a.cfg.RateBurst, a.cfg.RatePerSecond)
	h = CORS(h, a.cfg.CORSOrigins)
	h = SecurityHeaders(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) audit(ctx context.Context, event string, fields map[string]any) {
	_ = audit.LogEvent(ctx, event, fields)
}

// --- infra handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "manasa-backoffice",
		"version": a.cfg.Version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "manasa-backoffice",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.cfg.Version,
	})
}
