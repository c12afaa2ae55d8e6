// Package fleettest provides an in-memory fake of the fleet-management
// service for tests: the seven console-facing endpoints, simple lifecycle
// transitions, request counting and error injection.
package fleettest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/DVA506/SmartMove/internal/console/model"
)

type forcedFailure struct {
	status  int
	message string
}

// Server is a fake fleet API backed by an in-memory vehicle map.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	vehicles map[string]*model.VehicleSnapshot
	failures map[string]forcedFailure
	requests map[string]int
	healthy  bool
}

// New starts a fake fleet service. Callers must Close it.
func New() *Server {
	s := &Server{
		vehicles: map[string]*model.VehicleSnapshot{},
		failures: map[string]forcedFailure{},
		requests: map[string]int{},
		healthy:  true,
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/vehicle", s.handleGetVehicle).Methods(http.MethodGet)
	r.HandleFunc("/vehicles", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/reserve", s.handleTransition(model.StateReserved)).Methods(http.MethodPost)
	r.HandleFunc("/start", s.handleTransition(model.StateInUse)).Methods(http.MethodPost)
	r.HandleFunc("/end", s.handleTransition(model.StateAvailable)).Methods(http.MethodPost)
	r.HandleFunc("/telemetry", s.handleTelemetry).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	return s
}

// AddVehicle seeds a vehicle.
func (s *Server) AddVehicle(v model.VehicleSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = &v
}

// FailWith forces every request to path to answer status with {"error": message}.
// An empty message omits the error field so clients fall back to the generic one.
func (s *Server) FailWith(path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = forcedFailure{status: status, message: message}
}

// SetHealthy controls whether /health answers 2xx.
func (s *Server) SetHealthy(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = ok
}

// Requests reports how many calls path has received.
func (s *Server) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

func (s *Server) observe(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	s.requests[r.URL.Path]++
	failure, forced := s.failures[r.URL.Path]
	s.mu.Unlock()

	if forced {
		writeError(w, failure.status, failure.message)
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.observe(w, r) {
		return
	}

	s.mu.Lock()
	healthy := s.healthy
	s.mu.Unlock()

	if !healthy {
		writeError(w, http.StatusServiceUnavailable, "down for maintenance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	if !s.observe(w, r) {
		return
	}

	s.mu.Lock()
	v, ok := s.vehicles[r.URL.Query().Get("id")]
	var snap model.VehicleSnapshot
	if ok {
		snap = *v
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.observe(w, r) {
		return
	}

	var req struct {
		Type string `json:"type"`
		City string `json:"city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	v := &model.VehicleSnapshot{
		ID:    uuid.NewString(),
		Type:  req.Type,
		City:  req.City,
		State: model.StateAvailable,
	}

	s.mu.Lock()
	s.vehicles[v.ID] = v
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"id": v.ID})
}

func (s *Server) handleTransition(target model.VehicleState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.observe(w, r) {
			return
		}

		var req struct {
			VehicleID string `json:"vehicleId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}

		s.mu.Lock()
		v, ok := s.vehicles[req.VehicleID]
		if ok {
			v.State = target
		}
		s.mu.Unlock()

		if !ok {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	if !s.observe(w, r) {
		return
	}

	var req struct {
		VehicleID string `json:"vehicleId"`
		model.TelemetryReading
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	v, ok := s.vehicles[req.VehicleID]
	if ok {
		reading := req.TelemetryReading
		v.Telemetry = &reading
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, map[string]string{"error": message})
}
