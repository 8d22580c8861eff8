// internal/api/leagues/handlers.go
package leagues

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/streetball/internal/api/apiutil"
	engine "github.com/codr1/streetball/internal/leagues"
	"github.com/codr1/streetball/internal/season"
)

const (
	leagueQueryTimeout = 5 * time.Second
	teamIDPathKey      = "id"
	matchIDPathKey     = "id"
)

var (
	service *season.Service
)

type teamRequest struct {
	Name    string          `json:"name"`
	Players []engine.Player `json:"players"`
}

type resetRequest struct {
	Confirm   string `json:"confirm"`
	KeepTeams bool   `json:"keepTeams"`
}

type roundGroup struct {
	RoundIndex int            `json:"roundIndex"`
	RoundName  string         `json:"roundName"`
	RoundDates string         `json:"roundDates"`
	Matches    []engine.Match `json:"matches"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *season.Service) {
	if svc == nil {
		return
	}
	service = svc
}

func loadService() *season.Service {
	return service
}

// GET /api/v1/league
func HandleLeagueState(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	state, err := svc.State(ctx)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to load league"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, state); err != nil {
		logger.Error().Err(err).Msg("Failed to write league response")
	}
}

// GET /api/v1/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	teams, err := svc.Teams(ctx)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to list teams"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": teams}); err != nil {
		logger.Error().Err(err).Msg("Failed to write teams response")
	}
}

// POST /api/v1/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	team, err := svc.RegisterTeam(ctx, req.Name, req.Players)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to register team"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, team); err != nil {
		logger.Error().Err(err).Str("team_id", team.ID).Msg("Failed to write team response")
	}
}

// DELETE /api/v1/teams/{id}
func HandleTeamDelete(w http.ResponseWriter, r *http.Request) {
	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	teamID := strings.TrimSpace(r.PathValue(teamIDPathKey))
	if teamID == "" {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "team id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if err := svc.DeleteTeam(ctx, teamID); err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to delete team"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/matches
func HandleMatchesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	query := r.URL.Query()
	matchType := engine.MatchType(strings.TrimSpace(query.Get("type")))
	switch matchType {
	case "", engine.MatchRegular, engine.MatchPlayoff:
	default:
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "type must be regular or playoff"})
		return
	}
	grouped, err := apiutil.ParseOptionalBool(query.Get("grouped"), "grouped")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	matches, err := svc.Matches(ctx)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to list matches"))
		return
	}
	if matchType != "" {
		filtered := matches[:0]
		for _, m := range matches {
			if m.Type == matchType {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	var payload any = map[string]any{"matches": matches}
	if grouped {
		payload = map[string]any{"rounds": groupByRound(matches)}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, payload); err != nil {
		logger.Error().Err(err).Msg("Failed to write matches response")
	}
}

// groupByRound expects matches ordered by round index.
func groupByRound(matches []engine.Match) []roundGroup {
	groups := make([]roundGroup, 0)
	for _, m := range matches {
		if n := len(groups); n > 0 && groups[n-1].RoundName == m.RoundName && groups[n-1].RoundIndex == m.RoundIndex {
			groups[n-1].Matches = append(groups[n-1].Matches, m)
			continue
		}
		groups = append(groups, roundGroup{
			RoundIndex: m.RoundIndex,
			RoundName:  m.RoundName,
			RoundDates: m.RoundDates,
			Matches:    []engine.Match{m},
		})
	}
	return groups
}

// GET /api/v1/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	standings, err := svc.Standings(ctx)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to compute standings"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"standings": standings}); err != nil {
		logger.Error().Err(err).Msg("Failed to write standings response")
	}
}

// GET /api/v1/hall-of-fame
func HandleHallOfFame(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	entries, err := svc.HallOfFame(ctx)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to load hall of fame"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"champions": entries}); err != nil {
		logger.Error().Err(err).Msg("Failed to write hall of fame response")
	}
}

// POST /api/v1/admin/reset
func HandleReset(w http.ResponseWriter, r *http.Request) {
	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	var req resetRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if err := svc.Reset(ctx, season.ResetOptions{Confirm: req.Confirm, KeepTeams: req.KeepTeams}); err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to reset league"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceMissing(w http.ResponseWriter, r *http.Request) {
	apiutil.WriteError(w, r, apiutil.HandlerError{
		Status:  http.StatusInternalServerError,
		Message: "Internal Server Error",
		Err:     errors.New("league service not initialized"),
	})
}

// errorFor maps engine and service errors to HTTP statuses. fallback is the
// message for anything unexpected.
func errorFor(err error, fallback string) apiutil.HandlerError {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidScore),
		errors.Is(err, engine.ErrDrawNotAllowed),
		errors.Is(err, engine.ErrMissingStartDate),
		errors.Is(err, engine.ErrInvalidTeamID),
		errors.Is(err, season.ErrInvalidTeam),
		errors.Is(err, season.ErrResetNotConfirmed):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrMatchNotFound),
		errors.Is(err, season.ErrTeamNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidStage),
		errors.Is(err, engine.ErrFinalsExist),
		errors.Is(err, season.ErrStageConflict),
		errors.Is(err, season.ErrBracketLocked):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrInsufficientTeams),
		errors.Is(err, engine.ErrInsufficientStandings),
		errors.Is(err, engine.ErrSemifinalsIncomplete):
		status = http.StatusUnprocessableEntity
	}

	message := fallback
	if status != http.StatusInternalServerError {
		message = err.Error()
	}
	return apiutil.HandlerError{Status: status, Message: message, Err: err}
}
