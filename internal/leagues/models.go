package leagues

import "strings"

// Stage is the league's lifecycle phase.
type Stage string

const (
	StageRegistration Stage = "registration"
	StageRegular      Stage = "regular"
	StagePlayoff      Stage = "playoff"
)

func (s Stage) Valid() bool {
	switch s {
	case StageRegistration, StageRegular, StagePlayoff:
		return true
	}
	return false
}

// MatchType discriminates regular-season fixtures from playoff games.
type MatchType string

const (
	MatchRegular MatchType = "regular"
	MatchPlayoff MatchType = "playoff"
)

// PlayoffStage is only meaningful when the match type is MatchPlayoff.
type PlayoffStage string

const (
	PlayoffNone       PlayoffStage = ""
	PlayoffSemi       PlayoffStage = "semi"
	PlayoffFinal      PlayoffStage = "final"
	PlayoffThirdPlace PlayoffStage = "third-place"
)

type Player struct {
	Name string `json:"name"`
	Size string `json:"size,omitempty"`
}

type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// Snapshot copies the team into a value that matches embed. Later renames or
// deletions of the team do not touch matches that already hold a snapshot.
func (t Team) Snapshot() TeamSnapshot {
	players := make([]Player, len(t.Players))
	copy(players, t.Players)
	return TeamSnapshot{ID: t.ID, Name: t.Name, Players: players}
}

// TeamSnapshot is the team as it looked when a match was created. Seed is set
// for playoff matches only.
type TeamSnapshot struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players,omitempty"`
	Seed    int      `json:"seed,omitempty"`
}

type Match struct {
	ID         string       `json:"id"`
	Type       MatchType    `json:"type"`
	Stage      PlayoffStage `json:"stage,omitempty"`
	RoundName  string       `json:"roundName"`
	RoundDates string       `json:"roundDates"`
	RoundIndex int          `json:"roundIndex"`
	Home       TeamSnapshot `json:"homeTeam"`
	Away       TeamSnapshot `json:"awayTeam"`
	HomeScore  *int         `json:"homeScore"`
	AwayScore  *int         `json:"awayScore"`
	Played     bool         `json:"isPlayed"`
}

func (m Match) IsRegular() bool { return m.Type == MatchRegular }

func (m Match) IsPlayoff(stage PlayoffStage) bool {
	return m.Type == MatchPlayoff && m.Stage == stage
}

// Scores returns both scores, treating unset values as zero.
func (m Match) Scores() (int, int) {
	home, away := 0, 0
	if m.HomeScore != nil {
		home = *m.HomeScore
	}
	if m.AwayScore != nil {
		away = *m.AwayScore
	}
	return home, away
}

// Winner reports the team with the higher score. ok is false until the match
// is played.
func (m Match) Winner() (TeamSnapshot, bool) {
	if !m.Played {
		return TeamSnapshot{}, false
	}
	home, away := m.Scores()
	if home > away {
		return m.Home, true
	}
	return m.Away, true
}

func (m Match) Loser() (TeamSnapshot, bool) {
	if !m.Played {
		return TeamSnapshot{}, false
	}
	home, away := m.Scores()
	if home > away {
		return m.Away, true
	}
	return m.Home, true
}

// Involves reports whether the team plays in the match.
func (m Match) Involves(teamID string) bool {
	return m.Home.ID == teamID || m.Away.ID == teamID
}

// NormalizePlayers trims player names and drops empty entries.
func NormalizePlayers(players []Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		out = append(out, Player{Name: name, Size: strings.TrimSpace(p.Size)})
	}
	return out
}
