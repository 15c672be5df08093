package homeserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"courier/internal/domain"
)

// sessionMaxSkew bounds how stale a sign-in timestamp may be.
const sessionMaxSkew = 5 * time.Minute

// ServerConfig configures the development homeserver.
type ServerConfig struct {
	// DataDir is the Badger directory; empty means in-memory.
	DataDir string
	// DeleteRPS and DeleteBurst shape the per-owner delete budget.
	// Exhausting it yields 429 responses.
	DeleteRPS   float64
	DeleteBurst int
	Logger      *logrus.Logger
}

// Server is a development homeserver: a public-key-addressed object
// store over HTTP with public reads, session-authenticated writes, and
// rate-limited deletes.
type Server struct {
	cfg    ServerConfig
	db     *badger.DB
	log    *logrus.Logger
	router *mux.Router

	mu       sync.Mutex
	tokens   map[string]string        // bearer token -> owner public key
	limiters map[string]*rate.Limiter // owner public key -> delete budget

	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	rateLimited prometheus.Counter
}

// NewServer opens the backing store and builds the route table.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.DeleteRPS <= 0 {
		cfg.DeleteRPS = 25
	}
	if cfg.DeleteBurst <= 0 {
		cfg.DeleteBurst = 50
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	opts := badger.DefaultOptions(cfg.DataDir)
	opts.Logger = nil
	if cfg.DataDir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		db:       db,
		log:      cfg.Logger,
		tokens:   make(map[string]string),
		limiters: make(map[string]*rate.Limiter),
		registry: prometheus.NewRegistry(),
	}
	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homeserver_requests_total",
		Help: "Requests served, by method.",
	}, []string{"method"})
	s.rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "homeserver_rate_limited_total",
		Help: "Deletes refused with 429.",
	})
	s.registry.MustRegister(s.requests, s.rateLimited)

	r := mux.NewRouter()
	r.HandleFunc("/session", s.handleSession).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.PathPrefix("/").HandlerFunc(s.handleObject)
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Close releases the backing store.
func (s *Server) Close() error { return s.db.Close() }

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.requests.WithLabelValues(r.Method).Inc()
	defer r.Body.Close()

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad session request", http.StatusBadRequest)
		return
	}
	pk, err := domain.ParsePublicKey(req.PublicKey)
	if err != nil {
		http.Error(w, "bad public key", http.StatusBadRequest)
		return
	}
	skew := time.Since(time.Unix(req.Timestamp, 0))
	if skew < -sessionMaxSkew || skew > sessionMaxSkew {
		http.Error(w, "stale session timestamp", http.StatusUnauthorized)
		return
	}
	sig, err := base64.StdEncoding.DecodeString(req.Signature)
	if err != nil || !domain.VerifySignature(pk, SessionMessage(req.PublicKey, req.Timestamp), sig) {
		http.Error(w, "bad signature", http.StatusUnauthorized)
		return
	}

	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		http.Error(w, "token generation failed", http.StatusInternalServerError)
		return
	}
	token := hex.EncodeToString(raw[:])

	s.mu.Lock()
	s.tokens[token] = req.PublicKey
	s.mu.Unlock()

	s.log.WithField("owner", req.PublicKey).Info("session established")
	_ = json.NewEncoder(w).Encode(sessionResponse{Token: token})
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	s.requests.WithLabelValues(r.Method).Inc()

	path := strings.TrimPrefix(r.URL.Path, "/")
	owner, _, ok := strings.Cut(path, "/")
	if !ok || owner == "" {
		http.Error(w, "missing owner segment", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if strings.HasSuffix(path, "/") {
			s.list(w, path)
		} else {
			s.get(w, path)
		}
	case http.MethodPut:
		s.put(w, r, owner, path)
	case http.MethodDelete:
		s.del(w, r, owner, path)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) get(w http.ResponseWriter, path string) {
	var body []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(body)
}

func (s *Server) list(w http.ResponseWriter, prefix string) {
	var paths []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			paths = append(paths, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, p := range paths {
		_, _ = io.WriteString(w, p+"\n")
	}
}

func (s *Server) put(w http.ResponseWriter, r *http.Request, owner, path string) {
	if !s.authorized(r, owner) {
		http.Error(w, "not the owner", http.StatusForbidden)
		return
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body failed", http.StatusBadRequest)
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(path), body)
	})
	if err != nil {
		http.Error(w, "write failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) del(w http.ResponseWriter, r *http.Request, owner, path string) {
	if !s.authorized(r, owner) {
		http.Error(w, "not the owner", http.StatusForbidden)
		return
	}
	if !s.limiter(owner).Allow() {
		s.rateLimited.Inc()
		s.log.WithField("owner", owner).Warn("delete rate limit exceeded")
		http.Error(w, "slow down", http.StatusTooManyRequests)
		return
	}

	found := true
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(path)); err == badger.ErrKeyNotFound {
			found = false
			return nil
		}
		return txn.Delete([]byte(path))
	})
	if err != nil {
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorized reports whether the request carries a session token issued
// to owner.
func (s *Server) authorized(r *http.Request, owner string) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token] == owner
}

// limiter returns the delete budget for owner, creating it on first use.
func (s *Server) limiter(owner string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[owner]
	if !ok {
		l = rate.NewLimiter(rate.Limit(s.cfg.DeleteRPS), s.cfg.DeleteBurst)
		s.limiters[owner] = l
	}
	return l
}
