package leagues

import (
	"sort"

	"github.com/rs/zerolog/log"
)

const (
	pointsForWin  = 2
	pointsForLoss = 1
)

type TeamStanding struct {
	Team              TeamSnapshot `json:"team"`
	MatchesPlayed     int          `json:"matchesPlayed"`
	Points            int          `json:"points"`
	Wins              int          `json:"wins"`
	Losses            int          `json:"losses"`
	PointsFor         int          `json:"pointsFor"`
	PointsAgainst     int          `json:"pointsAgainst"`
	PointDifferential int          `json:"pointDifferential"`
}

func (s TeamStanding) TeamID() string   { return s.Team.ID }
func (s TeamStanding) TeamName() string { return s.Team.Name }

// ComputeStandings ranks teams from the played regular-season matches. It is
// recomputed from scratch on every call. Matches that reference a team which
// is no longer registered are skipped so the table always has an answer.
func ComputeStandings(teams []Team, matches []Match) []TeamStanding {
	ordered := make([]*TeamStanding, 0, len(teams))
	byID := make(map[string]*TeamStanding, len(teams))
	for _, team := range teams {
		if _, ok := byID[team.ID]; ok {
			continue
		}
		entry := &TeamStanding{Team: team.Snapshot()}
		byID[team.ID] = entry
		ordered = append(ordered, entry)
	}

	for _, match := range matches {
		if !match.IsRegular() || !match.Played {
			continue
		}
		home, okHome := byID[match.Home.ID]
		away, okAway := byID[match.Away.ID]
		if !okHome || !okAway {
			log.Warn().
				Err(ErrUnknownTeamReference).
				Str("match_id", match.ID).
				Str("home_team_id", match.Home.ID).
				Str("away_team_id", match.Away.ID).
				Msg("Skipping match in standings")
			continue
		}

		homeScore, awayScore := match.Scores()
		home.MatchesPlayed++
		away.MatchesPlayed++
		home.PointsFor += homeScore
		home.PointsAgainst += awayScore
		away.PointsFor += awayScore
		away.PointsAgainst += homeScore

		if homeScore > awayScore {
			home.Wins++
			home.Points += pointsForWin
			away.Losses++
			away.Points += pointsForLoss
		} else {
			away.Wins++
			away.Points += pointsForWin
			home.Losses++
			home.Points += pointsForLoss
		}
	}

	for _, entry := range ordered {
		entry.PointDifferential = entry.PointsFor - entry.PointsAgainst
	}

	// Stable so that teams level on every key keep registration order.
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		if ordered[i].PointDifferential != ordered[j].PointDifferential {
			return ordered[i].PointDifferential > ordered[j].PointDifferential
		}
		return ordered[i].PointsFor > ordered[j].PointsFor
	})

	standings := make([]TeamStanding, 0, len(ordered))
	for _, entry := range ordered {
		standings = append(standings, *entry)
	}
	return standings
}
