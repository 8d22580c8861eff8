package leagues

import (
	"strconv"
	"strings"
)

// MaxScore bounds a single team's score. It keeps standings totals far from
// integer overflow.
const MaxScore = 999

// UpdateScore parses raw score input and records it on the match. The
// original match is returned untouched when the input is rejected.
func UpdateScore(match Match, homeRaw, awayRaw string) (Match, error) {
	home, err := parseScore(homeRaw)
	if err != nil {
		return match, err
	}
	away, err := parseScore(awayRaw)
	if err != nil {
		return match, err
	}
	return RecordScore(match, home, away)
}

// RecordScore sets both scores and marks the match played. A streetball game
// always has a winner, so equal scores are rejected.
func RecordScore(match Match, home, away int) (Match, error) {
	if home < 0 || away < 0 || home > MaxScore || away > MaxScore {
		return match, ErrInvalidScore
	}
	if home == away {
		return match, ErrDrawNotAllowed
	}
	updated := match
	updated.HomeScore = &home
	updated.AwayScore = &away
	updated.Played = true
	return updated, nil
}

// ClearScore puts the match back to unplayed.
func ClearScore(match Match) Match {
	cleared := match
	cleared.HomeScore = nil
	cleared.AwayScore = nil
	cleared.Played = false
	return cleared
}

// parseScore accepts plain decimal digits only. Signs are rejected.
func parseScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] == '+' || raw[0] == '-' {
		return 0, ErrInvalidScore
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 || value > MaxScore {
		return 0, ErrInvalidScore
	}
	return value, nil
}
