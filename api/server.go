package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/matt-g-everett/devicetx/stream"
)

// Api serves the renderer client and the latest frame over HTTP.
type Api struct {
	mu     sync.RWMutex
	frame  *stream.Frame
	static string
}

// NewApi creates an Api serving static files from the given directory.
func NewApi(static string) *Api {
	a := new(Api)
	a.static = static
	return a
}

// SendFrame keeps f as the latest frame.
func (a *Api) SendFrame(f *stream.Frame) error {
	a.mu.Lock()
	a.frame = f
	a.mu.Unlock()
	return nil
}

// Frame returns the latest frame, or nil before the first one.
func (a *Api) Frame() *stream.Frame {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frame
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	f := a.Frame()
	if f == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		log.Printf("Encode frame: %v", err)
	}
}

// Handler routes /frame to the latest frame and everything else to the
// static client.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame", a.handleFrame)
	mux.Handle("/", http.FileServer(http.Dir(a.static)))
	return mux
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a.Handler())
}
