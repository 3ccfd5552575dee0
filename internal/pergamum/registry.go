package pergamum

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// ClientProvider hands out the client for a Pergamum base URL.
type ClientProvider interface {
	Client(baseURL string) (Client, error)
}

// Factory builds a client for a normalised base URL.
type Factory func(baseURL string) (Client, error)

// Registry caches one client per base URL. Clients are built lazily on first use; concurrent
// first requests for the same URL build exactly one.
type Registry struct {
	newClient Factory
	allowed   map[string]struct{}

	mu      sync.RWMutex
	clients map[string]Client
}

var _ ClientProvider = (*Registry)(nil)

// NewRegistry returns a registry using newClient. When allowedHosts is non-empty only those
// host names (case-insensitive, without port) are accepted.
func NewRegistry(newClient Factory, allowedHosts []string) *Registry {
	r := &Registry{newClient: newClient, clients: make(map[string]Client)}
	if len(allowedHosts) > 0 {
		r.allowed = make(map[string]struct{}, len(allowedHosts))
		for _, h := range allowedHosts {
			r.allowed[strings.ToLower(h)] = struct{}{}
		}
	}
	return r
}

// SOAPFactory returns a Factory building SOAPClients with opt.
func SOAPFactory(opt Options) Factory {
	return func(baseURL string) (Client, error) {
		return NewSOAPClient(baseURL, opt), nil
	}
}

// Client returns the cached client for baseURL, creating it if needed.
func (r *Registry) Client(baseURL string) (Client, error) {
	key, err := r.normalize(baseURL)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	c, ok := r.clients[key]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[key]; ok {
		return c, nil
	}
	c, err = r.newClient(key)
	if err != nil {
		return nil, fmt.Errorf("create client for %s: %w", key, err)
	}
	r.clients[key] = c
	return c, nil
}

// Len returns the number of cached clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// normalize validates baseURL and reduces it to scheme://host[:port][/path] so that
// "https://Lib.example.edu/" and "https://lib.example.edu" share a client.
func (r *Registry) normalize(baseURL string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", ErrBaseURLRequired
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Hostname() == "" || u.User != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	host := strings.ToLower(u.Hostname())
	if r.allowed != nil {
		if _, ok := r.allowed[host]; !ok {
			return "", fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
		}
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if p := u.Port(); p != "" {
		host += ":" + p
	}
	return scheme + "://" + host + strings.TrimRight(u.EscapedPath(), "/"), nil
}
