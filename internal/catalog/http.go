package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"DivineDazzle/internal/admin"
	"DivineDazzle/pkg/kit"
)

const (
	maxBodyBytes    = 1 << 20
	defaultTokenTTL = 12 * time.Hour
)

// Server is the presentation boundary over the Store: a public read-only
// catalog, an SSE change feed, and a JWT-gated admin surface. All field
// validation lives here; the Store accepts whatever it is handed.
type Server struct {
	Store    *Store
	Log      *zap.Logger
	Verifier admin.Verifier
	JWT      *admin.TokenMaker

	// TokenTTL defaults to 12h when zero.
	TokenTTL time.Duration

	// PublicLimiter, when set, wraps the public read routes only. The
	// login route is never rate limited.
	PublicLimiter func(http.Handler) http.Handler
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(pr chi.Router) {
		if s.PublicLimiter != nil {
			pr.Use(s.PublicLimiter)
		}
		pr.Get("/products", s.listActive)
		pr.Get("/products/{id}", s.getActive)
		pr.Get("/events", s.events)
	})

	r.Post("/admin/login", s.handleLogin)

	r.Group(func(ar chi.Router) {
		ar.Use(admin.Require(s.JWT))

		ar.Get("/admin/products", s.adminList)
		ar.Post("/admin/products", s.adminAdd)
		ar.Put("/admin/products", s.adminReplaceAll)
		ar.Patch("/admin/products/{id}", s.adminPatch)
		ar.Delete("/admin/products/{id}", s.adminRemove)
		ar.Post("/admin/products/{id}/sizes", s.adminAddSize)
		ar.Patch("/admin/products/{id}/sizes/{sizeID}", s.adminPatchSize)
		ar.Delete("/admin/products/{id}/sizes/{sizeID}", s.adminRemoveSize)
	})

	return r
}

func (s *Server) listActive(w http.ResponseWriter, r *http.Request) {
	all := s.Store.GetAll()
	active := make([]Product, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			active = append(active, p)
		}
	}
	kit.WriteJSON(w, http.StatusOK, active)
}

func (s *Server) getActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.Store.Get(id)
	if !ok || !p.IsActive {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

// events streams the catalog to storefront pages so they re-render on every
// change, including changes synced in from other instances.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		kit.WriteError(w, r, http.StatusInternalServerError, "streaming unsupported", nil)
		return
	}

	ch, cancel := s.Store.Watch()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent := func() bool {
		data, err := json.Marshal(s.Store.GetAll())
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "event: update\ndata: %s\n\n", data); err != nil {
			return false
		}
		fl.Flush()
		return true
	}

	if !writeEvent() {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			if !writeEvent() {
				return
			}
		}
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req loginReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "username/password required", nil)
		return
	}

	if err := s.Verifier.Verify(r.Context(), req.Username, req.Password); err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	token, err := s.JWT.New(req.Username, ttl)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("token mint failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, loginResp{AccessToken: token})
}

func (s *Server) adminList(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.GetAll())
}

func (s *Server) adminAdd(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var p Product
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if p.ID == "" {
		p.ID = NewProductID()
	}
	for i := range p.Sizes {
		if p.Sizes[i].ID == "" {
			p.Sizes[i].ID = NewSizeID()
		}
	}

	s.Store.Add(p)
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) adminReplaceAll(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var products []Product
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&products); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	s.Store.ReplaceAll(products)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminPatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var patch ProductPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	s.Store.Update(chi.URLParam(r, "id"), patch)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminRemove(w http.ResponseWriter, r *http.Request) {
	s.Store.Remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminAddSize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var size SizeVariant
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&size); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	id := chi.URLParam(r, "id")
	p, ok := s.Store.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if size.ID == "" {
		size.ID = NewSizeID()
	}
	sizes := append(p.Sizes, size)
	s.Store.Update(id, ProductPatch{Sizes: &sizes})
	kit.WriteJSON(w, http.StatusCreated, size)
}

func (s *Server) adminPatchSize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var patch SizePatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	s.Store.UpdateSize(chi.URLParam(r, "id"), chi.URLParam(r, "sizeID"), patch)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminRemoveSize(w http.ResponseWriter, r *http.Request) {
	s.Store.RemoveSize(chi.URLParam(r, "id"), chi.URLParam(r, "sizeID"))
	w.WriteHeader(http.StatusNoContent)
}
