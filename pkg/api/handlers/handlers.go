package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cbodonnell/tilearea/pkg/area"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/messages"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/repositories"
	"github.com/cbodonnell/tilearea/pkg/state"
	"github.com/gorilla/mux"
)

// Pathfinder answers path queries against the live areas. Unknown areas are
// reported with area.ErrAreaNotFound.
type Pathfinder interface {
	Pathfind(ctx context.Context, areaID string, from, to kinematic.Vector) ([]projection.TileCoord, error)
}

// Subscriber hands out streams of encoded area snapshots.
type Subscriber interface {
	Subscribe(areaID string) (<-chan []byte, func())
}

func writeJSON(w http.ResponseWriter, v interface{}, what string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode %s: %v", what, err)
		http.Error(w, fmt.Sprintf("Failed to encode %s", what), http.StatusInternalServerError)
	}
}

func HandleListAreas(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := stateManager.List(r.Context())
		if err != nil {
			log.Error("failed to list areas: %v", err)
			http.Error(w, "Failed to list areas", http.StatusInternalServerError)
			return
		}

		summaries := make([]messages.AreaSummary, 0, len(snapshots))
		for _, s := range snapshots {
			summaries = append(summaries, s.Summary())
		}
		writeJSON(w, summaries, "areas")
	}
}

func HandleGetArea(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		areaID := mux.Vars(r)["areaID"]
		snapshot, err := stateManager.Get(r.Context(), areaID)
		if err != nil {
			if state.IsNotFound(err) {
				http.Error(w, "Area not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get area %s: %v", areaID, err)
			http.Error(w, "Failed to get area", http.StatusInternalServerError)
			return
		}
		writeJSON(w, snapshot, "area")
	}
}

func HandleGetBody(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		snapshot, err := stateManager.Get(r.Context(), vars["areaID"])
		if err != nil {
			if state.IsNotFound(err) {
				http.Error(w, "Area not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get area %s: %v", vars["areaID"], err)
			http.Error(w, "Failed to get area", http.StatusInternalServerError)
			return
		}
		body, ok := snapshot.Body(vars["entityID"])
		if !ok {
			http.Error(w, "Entity not found", http.StatusNotFound)
			return
		}
		writeJSON(w, body, "body")
	}
}

// HandleGetPath finds a tile path between the world points in the from and
// to query parameters, each given as "x,y,z".
func HandleGetPath(pathfinder Pathfinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := parseVector(r.URL.Query().Get("from"))
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid from: %v", err), http.StatusBadRequest)
			return
		}
		to, err := parseVector(r.URL.Query().Get("to"))
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid to: %v", err), http.StatusBadRequest)
			return
		}

		areaID := mux.Vars(r)["areaID"]
		path, err := pathfinder.Pathfind(r.Context(), areaID, from, to)
		if err != nil {
			if errors.Is(err, area.ErrAreaNotFound) {
				http.Error(w, "Area not found", http.StatusNotFound)
				return
			}
			log.Error("failed to find path in area %s: %v", areaID, err)
			http.Error(w, "Failed to find path", http.StatusInternalServerError)
			return
		}
		if path == nil {
			path = []projection.TileCoord{}
		}
		writeJSON(w, path, "path")
	}
}

func HandleGetPlacement(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityID := mux.Vars(r)["entityID"]
		placement, err := repository.LoadPlacement(r.Context(), entityID)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Placement not found", http.StatusNotFound)
				return
			}
			log.Error("failed to load placement of entity %s: %v", entityID, err)
			http.Error(w, "Failed to load placement", http.StatusInternalServerError)
			return
		}
		writeJSON(w, placement, "placement")
	}
}

// parseVector parses "x,y" or "x,y,z".
func parseVector(s string) (kinematic.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return kinematic.Vector{}, fmt.Errorf("expected x,y[,z], got %q", s)
	}
	values := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return kinematic.Vector{}, fmt.Errorf("failed to parse %q: %v", p, err)
		}
		values[i] = v
	}
	return kinematic.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}
