// Package season persists the league engine's state transitions. Every
// transition runs in one transaction and moves the stored stage with a
// compare-and-set, so a lost race surfaces as ErrStageConflict.
package season

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	appdb "github.com/codr1/streetball/internal/db"
	dbgen "github.com/codr1/streetball/internal/db/generated"
	"github.com/codr1/streetball/internal/leagues"
)

const (
	// ResetConfirmation must be sent verbatim to wipe the season.
	ResetConfirmation = "RESET"

	DateLayout        = "2006-01-02"
	maxTeamNameLength = 40
)

type Options struct {
	MinPlayers    int
	MaxPlayers    int
	Location      *time.Location
	SeedDemoTeams bool
}

type Service struct {
	// mu serializes writers inside this process. The database lock covers
	// other processes.
	mu   sync.Mutex
	db   *appdb.DB
	opts Options
}

type State struct {
	Stage      leagues.Stage     `json:"stage"`
	SeasonID   string            `json:"seasonId,omitempty"`
	StartDate  string            `json:"startDate,omitempty"`
	MakeupWeek string            `json:"makeupWeek,omitempty"`
	TeamCount  int               `json:"teamCount"`
	Champion   *leagues.Champion `json:"champion,omitempty"`
}

type ResetOptions struct {
	Confirm   string
	KeepTeams bool
}

func NewService(database *appdb.DB, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MinPlayers <= 0 {
		opts.MinPlayers = 1
	}
	if opts.MaxPlayers < opts.MinPlayers {
		opts.MaxPlayers = opts.MinPlayers
	}
	return &Service{db: database, opts: opts}
}

func (s *Service) Location() *time.Location {
	return s.opts.Location
}

// ParseStartDate reads a YYYY-MM-DD date in the league's time zone.
func (s *Service) ParseStartDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, leagues.ErrMissingStartDate
	}
	date, err := time.ParseInLocation(DateLayout, raw, s.opts.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("start date must use %s: %w", DateLayout, err)
	}
	return date, nil
}

var demoTeams = []struct {
	name    string
	players []string
}{
	{"Asphalt Lions", []string{"Dani", "Yossi", "Moshe"}},
	{"Park Sharks", []string{"Avi", "Ron", "Tal"}},
	{"Hoop Kings", []string{"Omer", "Guy", "Itai"}},
	{"Block Snipers", []string{"Noam", "Eyal", "Shai"}},
}

// Bootstrap seeds the demo teams into an empty registration when enabled.
func (s *Service) Bootstrap(ctx context.Context) error {
	if !s.opts.SeedDemoTeams {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := 0
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		stage, _, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		count, err := tx.Queries.CountTeams(ctx)
		if err != nil {
			return fmt.Errorf("count teams: %w", err)
		}
		if stage != leagues.StageRegistration || count > 0 {
			return nil
		}

		for _, demo := range demoTeams {
			players := make([]leagues.Player, 0, len(demo.players))
			for _, name := range demo.players {
				players = append(players, leagues.Player{Name: name})
			}
			if _, err := insertTeam(ctx, tx.Queries, demo.name, players); err != nil {
				return err
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if seeded > 0 {
		log.Ctx(ctx).Info().Int("teams", seeded).Msg("Seeded demo teams")
	}
	return nil
}

func (s *Service) State(ctx context.Context) (State, error) {
	stage, row, err := loadState(ctx, s.db.Queries)
	if err != nil {
		return State{}, err
	}
	count, err := s.db.Queries.CountTeams(ctx)
	if err != nil {
		return State{}, fmt.Errorf("count teams: %w", err)
	}
	matches, err := listMatches(ctx, s.db.Queries)
	if err != nil {
		return State{}, err
	}

	state := State{
		Stage:      stage,
		SeasonID:   row.SeasonID,
		StartDate:  row.StartDate,
		MakeupWeek: row.MakeupDates,
		TeamCount:  int(count),
	}
	if champion, ok := leagues.DetermineChampion(matches); ok {
		state.Champion = &champion
	}
	return state, nil
}

func (s *Service) Teams(ctx context.Context) ([]leagues.Team, error) {
	return listTeams(ctx, s.db.Queries)
}

// RegisterTeam adds a team while registration is open.
func (s *Service) RegisterTeam(ctx context.Context, name string, players []leagues.Player) (leagues.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return leagues.Team{}, fmt.Errorf("%w: name is required", ErrInvalidTeam)
	}
	if len([]rune(name)) > maxTeamNameLength {
		return leagues.Team{}, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidTeam, maxTeamNameLength)
	}
	players = leagues.NormalizePlayers(players)
	if len(players) < s.opts.MinPlayers || len(players) > s.opts.MaxPlayers {
		return leagues.Team{}, fmt.Errorf("%w: a team needs %d to %d players", ErrInvalidTeam, s.opts.MinPlayers, s.opts.MaxPlayers)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var team leagues.Team
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		stage, _, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		if stage != leagues.StageRegistration {
			return fmt.Errorf("register team during %s: %w", stage, leagues.ErrInvalidStage)
		}
		team, err = insertTeam(ctx, tx.Queries, name, players)
		return err
	})
	if err != nil {
		return leagues.Team{}, err
	}

	log.Ctx(ctx).Info().Str("team_id", team.ID).Str("team_name", team.Name).Msg("Registered team")
	return team, nil
}

// DeleteTeam removes a team while registration is open.
func (s *Service) DeleteTeam(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		stage, _, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		if stage != leagues.StageRegistration {
			return fmt.Errorf("delete team during %s: %w", stage, leagues.ErrInvalidStage)
		}
		rows, err := tx.Queries.DeleteTeam(ctx, id)
		if err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		if rows == 0 {
			return ErrTeamNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().Str("team_id", id).Msg("Deleted team")
	return nil
}

func (s *Service) Matches(ctx context.Context) ([]leagues.Match, error) {
	return listMatches(ctx, s.db.Queries)
}

func (s *Service) Match(ctx context.Context, id string) (leagues.Match, error) {
	return getMatch(ctx, s.db.Queries, id)
}

func (s *Service) Standings(ctx context.Context) ([]leagues.TeamStanding, error) {
	teams, err := listTeams(ctx, s.db.Queries)
	if err != nil {
		return nil, err
	}
	matches, err := listMatches(ctx, s.db.Queries)
	if err != nil {
		return nil, err
	}
	return leagues.ComputeStandings(teams, matches), nil
}

// StartRegularSeason closes registration and stores the full fixture list.
func (s *Service) StartRegularSeason(ctx context.Context, startDate time.Time) (leagues.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seasonID := xid.New().String()
	var schedule leagues.Schedule
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		stage, _, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		teams, err := listTeams(ctx, tx.Queries)
		if err != nil {
			return err
		}

		var next leagues.Stage
		schedule, next, err = leagues.StartRegularSeason(stage, teams, startDate.In(s.opts.Location))
		if err != nil {
			return err
		}
		if err := insertMatches(ctx, tx.Queries, schedule.Matches); err != nil {
			return err
		}

		rows, err := tx.Queries.StartSeason(ctx, dbgen.StartSeasonParams{
			SeasonID:    seasonID,
			StartDate:   startDate.In(s.opts.Location).Format(DateLayout),
			MakeupDates: schedule.MakeupWeekLabel(),
		})
		if err != nil {
			return fmt.Errorf("store season start: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("move to %s: %w", next, ErrStageConflict)
		}
		return nil
	})
	if err != nil {
		return leagues.Schedule{}, err
	}

	log.Ctx(ctx).Info().
		Str("season_id", seasonID).
		Int("rounds", schedule.Rounds).
		Int("matches", len(schedule.Matches)).
		Msg("Started regular season")
	return schedule, nil
}

// RecordScore stores a result entered as raw text. Scoring the final archives
// the champion in the same transaction.
func (s *Service) RecordScore(ctx context.Context, matchID, homeRaw, awayRaw string) (leagues.Match, error) {
	return s.writeScore(ctx, matchID, func(m leagues.Match) (leagues.Match, error) {
		return leagues.UpdateScore(m, homeRaw, awayRaw)
	})
}

// ClearScore returns a match to unplayed. Clearing the final removes the
// season's hall of fame entry.
func (s *Service) ClearScore(ctx context.Context, matchID string) (leagues.Match, error) {
	return s.writeScore(ctx, matchID, func(m leagues.Match) (leagues.Match, error) {
		return leagues.ClearScore(m), nil
	})
}

func (s *Service) writeScore(ctx context.Context, matchID string, apply func(leagues.Match) (leagues.Match, error)) (leagues.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated leagues.Match
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		current, err := getMatch(ctx, tx.Queries, matchID)
		if err != nil {
			return err
		}

		if current.IsPlayoff(leagues.PlayoffSemi) {
			finals, err := tx.Queries.CountPlayoffMatches(ctx, string(leagues.PlayoffFinal))
			if err != nil {
				return fmt.Errorf("count finals: %w", err)
			}
			if finals > 0 {
				return ErrBracketLocked
			}
		}

		updated, err = apply(current)
		if err != nil {
			return err
		}

		homeScore, awayScore, played := scoreColumns(updated)
		rows, err := tx.Queries.UpdateMatchScore(ctx, dbgen.UpdateMatchScoreParams{
			HomeScore: homeScore,
			AwayScore: awayScore,
			IsPlayed:  played,
			ID:        updated.ID,
		})
		if err != nil {
			return fmt.Errorf("store score: %w", err)
		}
		if rows == 0 {
			return leagues.ErrMatchNotFound
		}

		if !updated.IsPlayoff(leagues.PlayoffFinal) {
			return nil
		}
		_, row, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		if !updated.Played {
			if err := tx.Queries.DeleteHallOfFameEntry(ctx, row.SeasonID); err != nil {
				return fmt.Errorf("remove hall of fame entry: %w", err)
			}
			return nil
		}
		matches, err := listMatches(ctx, tx.Queries)
		if err != nil {
			return err
		}
		_, _, err = archiveChampion(ctx, tx.Queries, row, matches)
		return err
	})
	if err != nil {
		return leagues.Match{}, err
	}

	event := log.Ctx(ctx).Info().Str("match_id", updated.ID).Bool("played", updated.Played)
	if updated.Played {
		home, away := updated.Scores()
		event = event.Int("home_score", home).Int("away_score", away)
	}
	event.Msg("Updated match score")
	return updated, nil
}

// StartFinalFour seeds the semifinals from the current standings and moves
// the league into the playoff stage.
func (s *Service) StartFinalFour(ctx context.Context) (leagues.Semifinals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var semis leagues.Semifinals
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		stage, _, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		teams, err := listTeams(ctx, tx.Queries)
		if err != nil {
			return err
		}
		matches, err := listMatches(ctx, tx.Queries)
		if err != nil {
			return err
		}

		var next leagues.Stage
		semis, next, err = leagues.StartFinalFour(stage, leagues.ComputeStandings(teams, matches))
		if err != nil {
			return err
		}
		if err := insertMatches(ctx, tx.Queries, semis.Matches()); err != nil {
			return err
		}
		return moveStage(ctx, tx.Queries, stage, next)
	})
	if err != nil {
		return leagues.Semifinals{}, err
	}

	log.Ctx(ctx).Info().
		Str("seed_1", semis.SemifinalOne.Home.Name).
		Str("seed_2", semis.SemifinalTwo.Home.Name).
		Msg("Started final four")
	return semis, nil
}

// GenerateFinals stores the final and the third place game once both
// semifinals are played.
func (s *Service) GenerateFinals(ctx context.Context) (leagues.Finals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var finals leagues.Finals
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		stage, _, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		matches, err := listMatches(ctx, tx.Queries)
		if err != nil {
			return err
		}
		finals, err = leagues.GenerateFinals(stage, matches)
		if err != nil {
			return err
		}
		if err := insertMatches(ctx, tx.Queries, finals.Matches()); err != nil {
			if appdb.IsUniqueViolation(err) {
				return leagues.ErrFinalsExist
			}
			return err
		}
		return nil
	})
	if err != nil {
		return leagues.Finals{}, err
	}

	log.Ctx(ctx).Info().
		Str("final_home", finals.Final.Home.Name).
		Str("final_away", finals.Final.Away.Name).
		Msg("Generated finals")
	return finals, nil
}

// Champion reports the champion once the final has a result.
func (s *Service) Champion(ctx context.Context) (leagues.Champion, bool, error) {
	matches, err := listMatches(ctx, s.db.Queries)
	if err != nil {
		return leagues.Champion{}, false, err
	}
	champion, ok := leagues.DetermineChampion(matches)
	return champion, ok, nil
}

// ArchiveChampion writes the current champion to the hall of fame. It is a
// no-op while the final is unplayed or when the stored entry is current.
func (s *Service) ArchiveChampion(ctx context.Context) (HallOfFameEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		entry    HallOfFameEntry
		archived bool
	)
	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		_, row, err := loadState(ctx, tx.Queries)
		if err != nil {
			return err
		}
		matches, err := listMatches(ctx, tx.Queries)
		if err != nil {
			return err
		}
		entry, archived, err = archiveChampion(ctx, tx.Queries, row, matches)
		return err
	})
	if err != nil {
		return HallOfFameEntry{}, false, err
	}
	return entry, archived, nil
}

func (s *Service) HallOfFame(ctx context.Context) ([]HallOfFameEntry, error) {
	rows, err := s.db.Queries.ListHallOfFame(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hall of fame: %w", err)
	}
	entries := make([]HallOfFameEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := hallOfFameFromRow(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Reset wipes the season back to registration. The hall of fame survives.
func (s *Service) Reset(ctx context.Context, opts ResetOptions) error {
	if opts.Confirm != ResetConfirmation {
		return ErrResetNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.RunInTx(ctx, func(tx *appdb.DB) error {
		if err := tx.Queries.DeleteAllMatches(ctx); err != nil {
			return fmt.Errorf("delete matches: %w", err)
		}
		if !opts.KeepTeams {
			if err := tx.Queries.DeleteAllTeams(ctx); err != nil {
				return fmt.Errorf("delete teams: %w", err)
			}
		}
		if err := tx.Queries.ResetLeagueState(ctx); err != nil {
			return fmt.Errorf("reset league state: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Ctx(ctx).Warn().Bool("keep_teams", opts.KeepTeams).Msg("League reset")
	return nil
}

func loadState(ctx context.Context, q *dbgen.Queries) (leagues.Stage, dbgen.LeagueState, error) {
	row, err := q.GetLeagueState(ctx)
	if err != nil {
		return "", dbgen.LeagueState{}, fmt.Errorf("load league state: %w", err)
	}
	stage := leagues.Stage(row.Stage)
	if !stage.Valid() {
		return "", dbgen.LeagueState{}, fmt.Errorf("stored stage %q: %w", row.Stage, leagues.ErrInvalidStage)
	}
	return stage, row, nil
}

func moveStage(ctx context.Context, q *dbgen.Queries, from, to leagues.Stage) error {
	rows, err := q.UpdateLeagueStage(ctx, dbgen.UpdateLeagueStageParams{
		NextStage:    string(to),
		CurrentStage: string(from),
	})
	if err != nil {
		return fmt.Errorf("move stage to %s: %w", to, err)
	}
	if rows == 0 {
		return fmt.Errorf("move stage to %s: %w", to, ErrStageConflict)
	}
	return nil
}

func listTeams(ctx context.Context, q *dbgen.Queries) ([]leagues.Team, error) {
	rows, err := q.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teamsFromRows(rows)
}

func insertTeam(ctx context.Context, q *dbgen.Queries, name string, players []leagues.Player) (leagues.Team, error) {
	encoded, err := json.Marshal(players)
	if err != nil {
		return leagues.Team{}, fmt.Errorf("encode players: %w", err)
	}
	id := xid.New().String()
	err = q.CreateTeam(ctx, dbgen.CreateTeamParams{ID: id, Name: name, Players: string(encoded)})
	if err != nil {
		if appdb.IsUniqueViolation(err) {
			return leagues.Team{}, fmt.Errorf("%w: a team named %q already exists", ErrInvalidTeam, name)
		}
		return leagues.Team{}, fmt.Errorf("create team: %w", err)
	}

	row, err := q.GetTeam(ctx, id)
	if err != nil {
		return leagues.Team{}, fmt.Errorf("reload team: %w", err)
	}
	return teamFromRow(row)
}

func listMatches(ctx context.Context, q *dbgen.Queries) ([]leagues.Match, error) {
	rows, err := q.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matchesFromRows(rows)
}

func getMatch(ctx context.Context, q *dbgen.Queries, id string) (leagues.Match, error) {
	row, err := q.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leagues.Match{}, leagues.ErrMatchNotFound
		}
		return leagues.Match{}, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row)
}

func insertMatches(ctx context.Context, q *dbgen.Queries, matches []leagues.Match) error {
	for _, m := range matches {
		params, err := createMatchParams(m)
		if err != nil {
			return err
		}
		if err := q.CreateMatch(ctx, params); err != nil {
			return fmt.Errorf("create match %s: %w", m.ID, err)
		}
	}
	return nil
}

func archiveChampion(ctx context.Context, q *dbgen.Queries, state dbgen.LeagueState, matches []leagues.Match) (HallOfFameEntry, bool, error) {
	champion, ok := leagues.DetermineChampion(matches)
	if !ok || state.SeasonID == "" {
		return HallOfFameEntry{}, false, nil
	}
	score := finalScoreLabel(champion.Final)

	existing, err := q.GetHallOfFameEntry(ctx, state.SeasonID)
	switch {
	case err == nil:
		if existing.ChampionID == champion.Team.ID && existing.FinalScore == score {
			entry, err := hallOfFameFromRow(existing)
			return entry, false, err
		}
	case !errors.Is(err, sql.ErrNoRows):
		return HallOfFameEntry{}, false, fmt.Errorf("load hall of fame entry: %w", err)
	}

	championJSON, err := json.Marshal(champion.Team)
	if err != nil {
		return HallOfFameEntry{}, false, fmt.Errorf("encode champion: %w", err)
	}
	runnerUpJSON, err := json.Marshal(champion.RunnerUp)
	if err != nil {
		return HallOfFameEntry{}, false, fmt.Errorf("encode runner-up: %w", err)
	}
	err = q.UpsertHallOfFameEntry(ctx, dbgen.UpsertHallOfFameEntryParams{
		SeasonID:     state.SeasonID,
		SeasonStart:  state.StartDate,
		ChampionID:   champion.Team.ID,
		ChampionName: champion.Team.Name,
		Champion:     string(championJSON),
		RunnerUp:     string(runnerUpJSON),
		FinalScore:   score,
	})
	if err != nil {
		return HallOfFameEntry{}, false, fmt.Errorf("archive champion: %w", err)
	}

	row, err := q.GetHallOfFameEntry(ctx, state.SeasonID)
	if err != nil {
		return HallOfFameEntry{}, false, fmt.Errorf("reload hall of fame entry: %w", err)
	}
	entry, err := hallOfFameFromRow(row)
	if err != nil {
		return HallOfFameEntry{}, false, err
	}

	log.Ctx(ctx).Info().
		Str("season_id", state.SeasonID).
		Str("champion", champion.Team.Name).
		Str("final_score", score).
		Msg("Archived champion")
	return entry, true, nil
}
