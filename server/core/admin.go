package core

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/automoto/kickoff/server/store"
)

type statusResponse struct {
	MatchID     string `json:"matchId"`
	Name        string `json:"name"`
	Pitch       string `json:"pitch"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	BlueScore   int    `json:"blueScore"`
	PurpleScore int    `json:"purpleScore"`
}

type episodesResponse struct {
	Episodes []store.Episode `json:"episodes"`
}

// AdminHandler serves /status and /episodes. extra handlers, such as
// /metrics, are mounted alongside.
func (s *Server) AdminHandler(extra map[string]http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/episodes", s.handleEpisodes)
	for pattern, h := range extra {
		mux.Handle(pattern, h)
	}
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	blue, purple := s.Score()
	writeJSON(w, http.StatusOK, statusResponse{
		MatchID:     s.matchID,
		Name:        s.cfg.Name,
		Pitch:       s.cfg.PitchName,
		Players:     s.PlayerCount(),
		MaxPlayers:  s.MaxPlayers(),
		BlueScore:   blue,
		PurpleScore: purple,
	})
}

func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, episodesResponse{Episodes: s.results.Recent(limit)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
