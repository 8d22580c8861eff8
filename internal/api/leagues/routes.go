package leagues

import "net/http"

// RegisterRoutes mounts the league API on mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/league", HandleLeagueState)

	mux.HandleFunc("GET /api/v1/teams", HandleTeamsList)
	mux.HandleFunc("POST /api/v1/teams", HandleTeamCreate)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", HandleTeamDelete)

	mux.HandleFunc("GET /api/v1/matches", HandleMatchesList)
	mux.HandleFunc("PUT /api/v1/matches/{id}/score", HandleScoreUpdate)
	mux.HandleFunc("DELETE /api/v1/matches/{id}/score", HandleScoreClear)

	mux.HandleFunc("GET /api/v1/standings", HandleStandings)
	mux.HandleFunc("POST /api/v1/schedule", HandleScheduleGenerate)
	mux.HandleFunc("POST /api/v1/playoffs/final-four", HandleFinalFourStart)
	mux.HandleFunc("POST /api/v1/playoffs/finals", HandleFinalsGenerate)
	mux.HandleFunc("GET /api/v1/hall-of-fame", HandleHallOfFame)

	mux.HandleFunc("POST /api/v1/admin/reset", HandleReset)
}
