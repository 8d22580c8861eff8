package leagues

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/streetball/internal/api/apiutil"
)

type scheduleRequest struct {
	StartDate string `json:"startDate"`
}

// scoreValue accepts a score as a JSON number or a string. It keeps the raw
// text so that the engine does the parsing and rejects bad input.
type scoreValue string

func (s *scoreValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = scoreValue(raw)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("score must be a number or a string")
	}
	*s = scoreValue(number.String())
	return nil
}

type scoreRequest struct {
	HomeScore scoreValue `json:"homeScore"`
	AwayScore scoreValue `json:"awayScore"`
}

// POST /api/v1/schedule
func HandleScheduleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	var req scheduleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}
	startDate, err := svc.ParseStartDate(req.StartDate)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	schedule, err := svc.StartRegularSeason(ctx, startDate)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to generate schedule"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]any{
		"rounds":     schedule.Rounds,
		"makeupWeek": schedule.MakeupWeekLabel(),
		"matches":    schedule.Matches,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write schedule response")
	}
}

// POST /api/v1/playoffs/final-four
func HandleFinalFourStart(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	semis, err := svc.StartFinalFour(ctx)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to start final four"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, semis); err != nil {
		logger.Error().Err(err).Msg("Failed to write semifinals response")
	}
}

// POST /api/v1/playoffs/finals
func HandleFinalsGenerate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	finals, err := svc.GenerateFinals(ctx)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to generate finals"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, finals); err != nil {
		logger.Error().Err(err).Msg("Failed to write finals response")
	}
}

// PUT /api/v1/matches/{id}/score
func HandleScoreUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	matchID := strings.TrimSpace(r.PathValue(matchIDPathKey))
	var req scoreRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	match, err := svc.RecordScore(ctx, matchID, string(req.HomeScore), string(req.AwayScore))
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to record score"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, match); err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to write match response")
	}
}

// DELETE /api/v1/matches/{id}/score
func HandleScoreClear(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		writeServiceMissing(w, r)
		return
	}

	matchID := strings.TrimSpace(r.PathValue(matchIDPathKey))

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	match, err := svc.ClearScore(ctx, matchID)
	if err != nil {
		apiutil.WriteError(w, r, errorFor(err, "Failed to clear score"))
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, match); err != nil {
		logger.Error().Err(err).Str("match_id", matchID).Msg("Failed to write match response")
	}
}
