package server

import (
	"net/http"

	"github.com/skip2/go-qrcode"
)

// The display endpoints back the shared "big screen". They are polled at
// sub-second to few-second intervals, so every response is read-only,
// side-effect free, and marked no-store.

type displayGame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	game, err := s.core.GameByDisplayToken(r.PathValue("token"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")

	round, err := s.core.ActiveRound(game.ID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if round != nil {
		tally, err := s.core.TallyForRound(round.ID)
		if err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"game":        displayGame{ID: game.ID, Name: game.Name},
			"mode":        "OPEN",
			"round":       buildRoundView(round),
			"options":     tally.Options,
			"total_votes": tally.Total,
			"leaderboard": []any{},
		})
		return
	}

	standings, err := s.core.Standings(game.ID, s.cfg.DisplayLeaderboardLimit)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game":        displayGame{ID: game.ID, Name: game.Name},
		"mode":        "LEADERBOARD",
		"leaderboard": standings,
	})
}

func (s *Server) handleDisplayByCode(w http.ResponseWriter, r *http.Request) {
	token, err := s.core.DisplayTokenByJoinCode(r.URL.Query().Get("code"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleDisplayQR renders a QR code pointing a phone or TV browser at the
// game's display projection.
func (s *Server) handleDisplayQR(w http.ResponseWriter, r *http.Request) {
	game, err := s.core.GameByID(r.PathValue("id"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	url := s.cfg.PublicBaseURL + "/api/display/" + game.DisplayToken
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render qr code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
