package season

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	dbgen "github.com/codr1/streetball/internal/db/generated"
	"github.com/codr1/streetball/internal/leagues"
)

type HallOfFameEntry struct {
	SeasonID    string               `json:"seasonId"`
	SeasonStart string               `json:"seasonStart"`
	Champion    leagues.TeamSnapshot `json:"champion"`
	RunnerUp    leagues.TeamSnapshot `json:"runnerUp"`
	FinalScore  string               `json:"finalScore"`
	ArchivedAt  time.Time            `json:"archivedAt"`
}

func teamFromRow(row dbgen.Team) (leagues.Team, error) {
	var players []leagues.Player
	if err := json.Unmarshal([]byte(row.Players), &players); err != nil {
		return leagues.Team{}, fmt.Errorf("decode players for team %s: %w", row.ID, err)
	}
	return leagues.Team{ID: row.ID, Name: row.Name, Players: players}, nil
}

func teamsFromRows(rows []dbgen.Team) ([]leagues.Team, error) {
	teams := make([]leagues.Team, 0, len(rows))
	for _, row := range rows {
		team, err := teamFromRow(row)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func matchFromRow(row dbgen.Match) (leagues.Match, error) {
	m := leagues.Match{
		ID:         row.ID,
		Type:       leagues.MatchType(row.MatchType),
		Stage:      leagues.PlayoffStage(row.PlayoffStage),
		RoundName:  row.RoundName,
		RoundDates: row.RoundDates,
		RoundIndex: int(row.RoundIndex),
		Played:     row.IsPlayed == 1,
	}
	if err := json.Unmarshal([]byte(row.HomeTeam), &m.Home); err != nil {
		return leagues.Match{}, fmt.Errorf("decode home team for match %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.AwayTeam), &m.Away); err != nil {
		return leagues.Match{}, fmt.Errorf("decode away team for match %s: %w", row.ID, err)
	}
	if row.HomeScore.Valid {
		home := int(row.HomeScore.Int64)
		m.HomeScore = &home
	}
	if row.AwayScore.Valid {
		away := int(row.AwayScore.Int64)
		m.AwayScore = &away
	}
	return m, nil
}

func matchesFromRows(rows []dbgen.Match) ([]leagues.Match, error) {
	matches := make([]leagues.Match, 0, len(rows))
	for _, row := range rows {
		m, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func createMatchParams(m leagues.Match) (dbgen.CreateMatchParams, error) {
	home, err := json.Marshal(m.Home)
	if err != nil {
		return dbgen.CreateMatchParams{}, fmt.Errorf("encode home team for match %s: %w", m.ID, err)
	}
	away, err := json.Marshal(m.Away)
	if err != nil {
		return dbgen.CreateMatchParams{}, fmt.Errorf("encode away team for match %s: %w", m.ID, err)
	}
	homeScore, awayScore, played := scoreColumns(m)
	return dbgen.CreateMatchParams{
		ID:           m.ID,
		MatchType:    string(m.Type),
		PlayoffStage: string(m.Stage),
		RoundName:    m.RoundName,
		RoundDates:   m.RoundDates,
		RoundIndex:   int64(m.RoundIndex),
		HomeTeamID:   m.Home.ID,
		AwayTeamID:   m.Away.ID,
		HomeTeam:     string(home),
		AwayTeam:     string(away),
		HomeScore:    homeScore,
		AwayScore:    awayScore,
		IsPlayed:     played,
	}, nil
}

func scoreColumns(m leagues.Match) (sql.NullInt64, sql.NullInt64, int64) {
	var home, away sql.NullInt64
	if m.HomeScore != nil {
		home = sql.NullInt64{Int64: int64(*m.HomeScore), Valid: true}
	}
	if m.AwayScore != nil {
		away = sql.NullInt64{Int64: int64(*m.AwayScore), Valid: true}
	}
	var played int64
	if m.Played {
		played = 1
	}
	return home, away, played
}

func hallOfFameFromRow(row dbgen.HallOfFame) (HallOfFameEntry, error) {
	entry := HallOfFameEntry{
		SeasonID:    row.SeasonID,
		SeasonStart: row.SeasonStart,
		FinalScore:  row.FinalScore,
		ArchivedAt:  row.ArchivedAt,
	}
	if err := json.Unmarshal([]byte(row.Champion), &entry.Champion); err != nil {
		return HallOfFameEntry{}, fmt.Errorf("decode champion for season %s: %w", row.SeasonID, err)
	}
	if err := json.Unmarshal([]byte(row.RunnerUp), &entry.RunnerUp); err != nil {
		return HallOfFameEntry{}, fmt.Errorf("decode runner-up for season %s: %w", row.SeasonID, err)
	}
	return entry, nil
}

func finalScoreLabel(final leagues.Match) string {
	home, away := final.Scores()
	return fmt.Sprintf("%s %d - %d %s", final.Home.Name, home, away, final.Away.Name)
}
