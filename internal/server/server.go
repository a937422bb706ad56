// Package server exposes a travel plan over an HTTP JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/pipeline"
	"github.com/theirongolddev/tripcost/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	AllowedOrigins []string
	BaseCurrency   string
	EventsBuffer   int
	Rates          pipeline.RateFetcher
	Multipliers    pipeline.MultiplierFetcher
	Log            zerolog.Logger
}

// Event is emitted whenever the plan state is replaced.
type Event struct {
	ID        int64            `json:"id"`
	Type      string           `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Totals    model.PlanTotals `json:"totals"`
}

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventInputs      = "inputs_changed"
	EventCountry     = "country_changed"
	EventMultipliers = "multipliers_refreshed"
	EventRates       = "rates_refreshed"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time               `json:"startedAt"`
	Refreshing      bool                    `json:"refreshing"`
	LastRefresh     *pipeline.RefreshReport `json:"lastRefresh,omitempty"`
	RatesBase       string                  `json:"ratesBase"`
	RatesFallback   bool                    `json:"ratesFallback"`
	RatesFetchedAt  time.Time               `json:"ratesFetchedAt"`
	EventCount      int                     `json:"eventCount"`
	SubscriberCount int                     `json:"subscriberCount"`
}

// Server owns one plan state and serves it over HTTP.
type Server struct {
	cfg    Config
	log    zerolog.Logger
	router *chi.Mux

	refreshing atomic.Bool

	mu          sync.RWMutex
	state       state.State
	startedAt   time.Time
	lastRefresh *pipeline.RefreshReport
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a server holding initial.
func New(cfg Config, initial state.State) *Server {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = pipeline.DefaultBaseCurrency
	}

	s := &Server{
		cfg:       cfg,
		log:       cfg.Log.With().Str("component", "server").Logger(),
		router:    chi.NewRouter(),
		state:     initial,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// State returns the current state.
func (s *Server) State() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Run loads rates once, then serves HTTP until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.refreshRates(ctx)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/plan", s.handlePlan)
		r.Put("/inputs", s.handlePutInputs)
		r.Patch("/countries/{index}", s.handlePatchCountry)
		r.Post("/multipliers/refresh", s.handleRefreshMultipliers)
		r.Get("/rates", s.handleRates)
		r.Post("/rates/refresh", s.handleRefreshRates)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// replace swaps in the result of fn and publishes an event. Both happen
// under one lock so events reach the ring and subscribers in ID order.
func (s *Server) replace(eventType string, fn func(state.State) state.State) state.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = fn(s.state)
	s.nextEventID++
	s.publishLocked(Event{
		ID:        s.nextEventID,
		Type:      eventType,
		Timestamp: time.Now(),
		Totals:    s.state.Plan().Totals,
	})
	return s.state
}

func (s *Server) refreshRates(ctx context.Context) model.RateSet {
	rates := pipeline.LoadRates(ctx, s.cfg.Rates, s.cfg.BaseCurrency, s.log)
	s.replace(EventRates, func(st state.State) state.State {
		return st.WithRates(rates)
	})
	return rates
}

// refreshMultipliers fetches live multipliers for the current countries and
// applies them in one replacement. It reports false if a refresh is
// already running.
func (s *Server) refreshMultipliers(ctx context.Context) (state.State, pipeline.RefreshReport, bool) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return state.State{}, pipeline.RefreshReport{}, false
	}
	defer s.refreshing.Store(false)

	before := s.State().Countries
	refreshed, report := pipeline.RefreshMultipliers(ctx, s.cfg.Multipliers, before, s.log)

	next := s.replace(EventMultipliers, func(st state.State) state.State {
		return st.WithCountries(pipeline.MergeMultipliers(before, st.Countries, refreshed, report.Updated))
	})

	s.mu.Lock()
	s.lastRefresh = &report
	s.mu.Unlock()

	return next, report, true
}

// publishLocked appends ev to the ring and fans it out without blocking.
// s.mu must be held.
func (s *Server) publishLocked(ev Event) {
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Server) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Refreshing:      s.refreshing.Load(),
		LastRefresh:     s.lastRefresh,
		RatesBase:       s.state.Rates.Base,
		RatesFallback:   s.state.Rates.Fallback,
		RatesFetchedAt:  s.state.Rates.FetchedAt,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Server) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Server) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
