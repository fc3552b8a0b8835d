package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gridverse/spacesync/catalog"
	"github.com/gridverse/spacesync/space/room"
	"github.com/gridverse/spacesync/transport/websocket"
)

// Server is the HTTP surface: the websocket endpoint plus a small
// read-only API over the space catalog and live rooms.
type Server struct {
	catalog  *catalog.Manager
	gateway  *websocket.Gateway
	registry *room.Registry
	router   *mux.Router
}

// NewServer creates the HTTP server. catalog may be nil when spaces
// come from an upstream directory; the catalog routes then 404.
func NewServer(cat *catalog.Manager, gw *websocket.Gateway, reg *room.Registry) *Server {
	s := &Server{
		catalog:  cat,
		gateway:  gw,
		registry: reg,
		router:   mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/spaces", s.handleListSpaces).Methods("GET")
	api.HandleFunc("/space/{id}", s.handleGetSpace).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.gateway.ServeWS)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// SpaceInfo is one entry in the space listing.
type SpaceInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	Users      int    `json:"users"`
}

func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		respondError(w, http.StatusNotFound, "no local space catalog")
		return
	}

	ids, err := s.catalog.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	spaces := make([]SpaceInfo, 0, len(ids))
	for _, id := range ids {
		def, err := s.catalog.Definition(r.Context(), id)
		if err != nil {
			// Skip files that do not parse; the listing stays useful.
			continue
		}
		info := SpaceInfo{ID: id, Name: def.Name, Dimensions: def.Dimensions}
		if rm, ok := s.registry.Get(id); ok {
			info.Users = rm.MemberCount()
		}
		spaces = append(spaces, info)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(spaces),
		"spaces": spaces,
	})
}

func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		respondError(w, http.StatusNotFound, "no local space catalog")
		return
	}

	vars := mux.Vars(r)
	spaceID := vars["id"]

	def, err := s.catalog.Definition(r.Context(), spaceID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, def)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
