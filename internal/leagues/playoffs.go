package leagues

import (
	"fmt"
	"time"
)

const (
	SemifinalOneID = "ff_s1"
	SemifinalTwoID = "ff_s2"
	FinalID        = "ff_final"
	ThirdPlaceID   = "ff_3rd"

	semifinalRoundIndex  = 1000
	thirdPlaceRoundIndex = 1001
	finalRoundIndex      = 1002

	finalFourSeeds = 4
)

type Semifinals struct {
	SemifinalOne Match `json:"semifinal1"`
	SemifinalTwo Match `json:"semifinal2"`
}

func (s Semifinals) Matches() []Match {
	return []Match{s.SemifinalOne, s.SemifinalTwo}
}

type Finals struct {
	Final      Match `json:"final"`
	ThirdPlace Match `json:"thirdPlace"`
}

func (f Finals) Matches() []Match {
	return []Match{f.Final, f.ThirdPlace}
}

type Champion struct {
	Team     TeamSnapshot `json:"team"`
	RunnerUp TeamSnapshot `json:"runnerUp"`
	Final    Match        `json:"final"`
}

// StartRegularSeason moves the league out of registration by generating the
// full fixture list. Nothing changes when it fails.
func StartRegularSeason(stage Stage, teams []Team, startDate time.Time) (Schedule, Stage, error) {
	if stage != StageRegistration {
		return Schedule{}, stage, fmt.Errorf("start regular season from %s: %w", stage, ErrInvalidStage)
	}
	schedule, err := GenerateSchedule(teams, startDate)
	if err != nil {
		return Schedule{}, stage, err
	}
	return schedule, StageRegular, nil
}

// StartFinalFour seeds the semifinals from the final regular-season table:
// seed 1 plays seed 4 and seed 2 plays seed 3, so the top two can only meet
// in the final.
func StartFinalFour(stage Stage, standings []TeamStanding) (Semifinals, Stage, error) {
	if stage != StageRegular {
		return Semifinals{}, stage, fmt.Errorf("start final four from %s: %w", stage, ErrInvalidStage)
	}
	if len(standings) < finalFourSeeds {
		return Semifinals{}, stage, ErrInsufficientStandings
	}

	seeds := make([]TeamSnapshot, finalFourSeeds)
	for i := range seeds {
		seeds[i] = standings[i].Team
		seeds[i].Seed = i + 1
	}

	semis := Semifinals{
		SemifinalOne: newPlayoffMatch(SemifinalOneID, PlayoffSemi, "Semifinal (1 vs 4)", "Final Four", semifinalRoundIndex, seeds[0], seeds[3]),
		SemifinalTwo: newPlayoffMatch(SemifinalTwoID, PlayoffSemi, "Semifinal (2 vs 3)", "Final Four", semifinalRoundIndex, seeds[1], seeds[2]),
	}
	return semis, StagePlayoff, nil
}

// GenerateFinals pairs the semifinal winners for the title and the losers for
// third place. It refuses to run twice so the bracket has a single final.
func GenerateFinals(stage Stage, matches []Match) (Finals, error) {
	if stage != StagePlayoff {
		return Finals{}, fmt.Errorf("generate finals from %s: %w", stage, ErrInvalidStage)
	}
	if _, ok := FindMatch(matches, func(m Match) bool { return m.IsPlayoff(PlayoffFinal) }); ok {
		return Finals{}, ErrFinalsExist
	}

	semiOne, okOne := FindMatch(matches, func(m Match) bool { return m.ID == SemifinalOneID && m.IsPlayoff(PlayoffSemi) })
	semiTwo, okTwo := FindMatch(matches, func(m Match) bool { return m.ID == SemifinalTwoID && m.IsPlayoff(PlayoffSemi) })
	if !okOne || !okTwo || !semiOne.Played || !semiTwo.Played {
		return Finals{}, ErrSemifinalsIncomplete
	}

	winnerOne, _ := semiOne.Winner()
	loserOne, _ := semiOne.Loser()
	winnerTwo, _ := semiTwo.Winner()
	loserTwo, _ := semiTwo.Loser()

	return Finals{
		Final:      newPlayoffMatch(FinalID, PlayoffFinal, "Final", "Decider", finalRoundIndex, winnerOne, winnerTwo),
		ThirdPlace: newPlayoffMatch(ThirdPlaceID, PlayoffThirdPlace, "Third Place", "Decider", thirdPlaceRoundIndex, loserOne, loserTwo),
	}, nil
}

// DetermineChampion reports the season champion once the final is played.
func DetermineChampion(matches []Match) (Champion, bool) {
	final, ok := FindMatch(matches, func(m Match) bool { return m.IsPlayoff(PlayoffFinal) })
	if !ok || !final.Played {
		return Champion{}, false
	}
	winner, _ := final.Winner()
	loser, _ := final.Loser()
	return Champion{Team: winner, RunnerUp: loser, Final: final}, true
}

// FindMatch returns the first match accepted by pred.
func FindMatch(matches []Match, pred func(Match) bool) (Match, bool) {
	for _, m := range matches {
		if pred(m) {
			return m, true
		}
	}
	return Match{}, false
}

func newPlayoffMatch(id string, stage PlayoffStage, name, dates string, roundIndex int, home, away TeamSnapshot) Match {
	return Match{
		ID:         id,
		Type:       MatchPlayoff,
		Stage:      stage,
		RoundName:  name,
		RoundDates: dates,
		RoundIndex: roundIndex,
		Home:       home,
		Away:       away,
	}
}
