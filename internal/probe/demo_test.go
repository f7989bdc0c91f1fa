package probe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"
)

// demoService is an in-process double of the service under test,
// mirroring the demo API surface: /, /health, /ready, /counter,
// /users, /metrics.
type demoService struct {
	counter   atomic.Int64
	redisDown bool
	pgDown    bool

	mu    sync.Mutex
	users []map[string]any
}

func (d *demoService) handler() http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, doc any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(doc)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "DevOps Demo API",
			"version": "1.0.0",
		})
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"version":   "1.0.0",
			"timestamp": float64(time.Now().Unix()),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if d.redisDown || d.pgDown {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	mux.HandleFunc("/counter", func(w http.ResponseWriter, r *http.Request) {
		if d.redisDown {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"detail": "Redis not available"})
			return
		}
		if r.Method == http.MethodPost {
			d.counter.Add(1)
		}
		writeJSON(w, http.StatusOK, map[string]any{"counter": d.counter.Load()})
	})

	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if d.pgDown {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"detail": "Database not available"})
			return
		}
		d.mu.Lock()
		defer d.mu.Unlock()
		if r.Method == http.MethodPost {
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			user := map[string]any{
				"id":    len(d.users) + 1,
				"name":  in["name"],
				"email": in["email"],
			}
			d.users = append(d.users, user)
			writeJSON(w, http.StatusOK, user)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": d.users})
	})

	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "# TYPE api_counter_total counter\napi_counter_total %d\n", d.counter.Load())
	})

	return mux
}

func newDemoServer() (*demoService, *httptest.Server) {
	d := &demoService{}
	return d, httptest.NewServer(d.handler())
}
