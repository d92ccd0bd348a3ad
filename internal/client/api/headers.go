package api

import (
	"net/http"
	"sync"
)

// Headers are default headers applied to every outgoing request.
type Headers struct {
	mu sync.RWMutex
	h  http.Header
}

func NewHeaders() *Headers {
	return &Headers{h: make(http.Header)}
}

func (h *Headers) Set(key, value string) {
	h.mu.Lock()
	h.h.Set(key, value)
	h.mu.Unlock()
}

// Del removes key entirely.
func (h *Headers) Del(key string) {
	h.mu.Lock()
	h.h.Del(key)
	h.mu.Unlock()
}

func (h *Headers) Get(key string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.h.Get(key)
}

func (h *Headers) Has(key string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.h[http.CanonicalHeaderKey(key)]
	return ok
}

// Apply copies the defaults onto req, overriding same-named headers.
func (h *Headers) Apply(req *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for k, v := range h.h {
		req.Header[k] = append([]string(nil), v...)
	}
}
