package leagues

import (
	"fmt"
	"time"
)

const (
	weekDateLayout = "02.01.06"
	byeTeamID      = "bye"
)

// WeekRange is one Sunday-to-Saturday league week.
type WeekRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w WeekRange) Label() string {
	return fmt.Sprintf("%s - %s", w.Start.Format(weekDateLayout), w.End.Format(weekDateLayout))
}

type Schedule struct {
	Matches    []Match   `json:"matches"`
	Rounds     int       `json:"rounds"`
	MakeupWeek WeekRange `json:"makeupWeek"`
}

func (s Schedule) MakeupWeekLabel() string {
	return s.MakeupWeek.Label()
}

// GenerateSchedule builds a single round robin with the circle method. The
// first team stays fixed while the rest rotate one place per round. An odd
// field gets a bye slot, and games against the bye are not emitted. The week
// after the last round is returned as the makeup week.
func GenerateSchedule(teams []Team, startDate time.Time) (Schedule, error) {
	if len(teams) < 2 {
		return Schedule{}, ErrInsufficientTeams
	}
	if startDate.IsZero() {
		return Schedule{}, ErrMissingStartDate
	}
	if err := checkDistinctTeams(teams); err != nil {
		return Schedule{}, err
	}

	working := make([]*Team, 0, len(teams)+1)
	for i := range teams {
		working = append(working, &teams[i])
	}
	if len(working)%2 == 1 {
		working = append(working, nil)
	}

	size := len(working)
	rounds := size - 1
	half := size / 2

	rotation := make([]int, 0, size-1)
	for i := 1; i < size; i++ {
		rotation = append(rotation, i)
	}

	firstSunday := weekStart(startDate)
	matches := make([]Match, 0, rounds*half)
	positions := make([]int, size)

	for round := 0; round < rounds; round++ {
		positions[0] = 0
		copy(positions[1:], rotation)
		week := weekRange(firstSunday, round)

		for i := 0; i < half; i++ {
			home := working[positions[i]]
			away := working[positions[size-1-i]]
			if home == nil || away == nil {
				continue
			}
			matches = append(matches, Match{
				ID:         fmt.Sprintf("m_%d_%s_%s", round, home.ID, away.ID),
				Type:       MatchRegular,
				RoundName:  fmt.Sprintf("Round %d", round+1),
				RoundDates: week.Label(),
				RoundIndex: round,
				Home:       home.Snapshot(),
				Away:       away.Snapshot(),
			})
		}
		rotateTeams(rotation)
	}

	return Schedule{
		Matches:    matches,
		Rounds:     rounds,
		MakeupWeek: weekRange(firstSunday, rounds),
	}, nil
}

// rotateTeams moves the front of the rotating set to the back.
func rotateTeams(rotation []int) {
	if len(rotation) < 2 {
		return
	}
	first := rotation[0]
	copy(rotation, rotation[1:])
	rotation[len(rotation)-1] = first
}

func checkDistinctTeams(teams []Team) error {
	seen := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		if team.ID == "" || team.ID == byeTeamID {
			return fmt.Errorf("%w %q", ErrInvalidTeamID, team.ID)
		}
		if _, ok := seen[team.ID]; ok {
			return fmt.Errorf("%w: duplicate %q", ErrInvalidTeamID, team.ID)
		}
		seen[team.ID] = struct{}{}
	}
	return nil
}

// weekStart returns midnight of the Sunday on or before value.
func weekStart(value time.Time) time.Time {
	day := truncateDate(value)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func weekRange(firstSunday time.Time, offset int) WeekRange {
	start := firstSunday.AddDate(0, 0, offset*7)
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}
}

func truncateDate(value time.Time) time.Time {
	loc := value.Location()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, loc)
}
