package season

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/streetball/internal/leagues"
	"github.com/codr1/streetball/internal/testutil"
)

var seasonStart = time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.NewTestDB(t), Options{MinPlayers: 3, MaxPlayers: 4})
}

func roster(names ...string) []leagues.Player {
	players := make([]leagues.Player, 0, len(names))
	for _, name := range names {
		players = append(players, leagues.Player{Name: name})
	}
	return players
}

// registerTeams registers teams in order and returns them keyed by name.
func registerTeams(t *testing.T, svc *Service, names ...string) map[string]leagues.Team {
	t.Helper()
	teams := make(map[string]leagues.Team, len(names))
	for _, name := range names {
		team, err := svc.RegisterTeam(context.Background(), name, roster(name+"1", name+"2", name+"3"))
		require.NoError(t, err)
		teams[name] = team
	}
	return teams
}

// scoreFor returns a score line where the better ranked team wins by six.
func scoreFor(m leagues.Match, rank map[string]int) (string, string) {
	if rank[m.Home.ID] < rank[m.Away.ID] {
		return "21", "15"
	}
	return "15", "21"
}

func playRegularSeason(t *testing.T, svc *Service, rank map[string]int) {
	t.Helper()
	ctx := context.Background()
	matches, err := svc.Matches(ctx)
	require.NoError(t, err)
	for _, m := range matches {
		if !m.IsRegular() {
			continue
		}
		home, away := scoreFor(m, rank)
		_, err := svc.RecordScore(ctx, m.ID, home, away)
		require.NoError(t, err)
	}
}

func rankByRegistration(teams map[string]leagues.Team, order ...string) map[string]int {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[teams[name].ID] = i
	}
	return rank
}

func TestRegisterTeamValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterTeam(ctx, "   ", roster("a", "b", "c"))
	assert.ErrorIs(t, err, ErrInvalidTeam)

	_, err = svc.RegisterTeam(ctx, "Two Short", roster("a", "", "b"))
	assert.ErrorIs(t, err, ErrInvalidTeam)

	_, err = svc.RegisterTeam(ctx, "Too Many", roster("a", "b", "c", "d", "e"))
	assert.ErrorIs(t, err, ErrInvalidTeam)

	team, err := svc.RegisterTeam(ctx, "  Rollers ", []leagues.Player{{Name: " Dana "}, {Name: "Eli"}, {Name: "Gil", Size: "L"}})
	require.NoError(t, err)
	assert.Equal(t, "Rollers", team.Name)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Dana", team.Players[0].Name)
	assert.Equal(t, "L", team.Players[2].Size)

	_, err = svc.RegisterTeam(ctx, "ROLLERS", roster("a", "b", "c"))
	assert.ErrorIs(t, err, ErrInvalidTeam)

	teams, err := svc.Teams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestDeleteTeam(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	teams := registerTeams(t, svc, "A", "B")

	require.NoError(t, svc.DeleteTeam(ctx, teams["A"].ID))
	assert.ErrorIs(t, svc.DeleteTeam(ctx, teams["A"].ID), ErrTeamNotFound)

	remaining, err := svc.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "B", remaining[0].Name)
}

func TestFullSeason(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	teams := registerTeams(t, svc, "A", "B", "C", "D")
	rank := rankByRegistration(teams, "A", "B", "C", "D")

	schedule, err := svc.StartRegularSeason(ctx, seasonStart)
	require.NoError(t, err)
	assert.Equal(t, 3, schedule.Rounds)
	assert.Len(t, schedule.Matches, 6)

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, leagues.StageRegular, state.Stage)
	assert.Equal(t, "2024-05-15", state.StartDate)
	assert.Equal(t, schedule.MakeupWeekLabel(), state.MakeupWeek)
	assert.NotEmpty(t, state.SeasonID)
	assert.Nil(t, state.Champion)

	stored, err := svc.Matches(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 6)
	assert.Equal(t, schedule.Matches[0].ID, stored[0].ID)
	assert.Equal(t, schedule.Matches[0].Home, stored[0].Home)

	playRegularSeason(t, svc, rank)

	standings, err := svc.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)
	for i, name := range []string{"A", "B", "C", "D"} {
		assert.Equal(t, name, standings[i].TeamName())
		assert.Equal(t, 3, standings[i].MatchesPlayed)
	}
	assert.Equal(t, 6, standings[0].Points)
	assert.Equal(t, 3, standings[3].Points)

	_, err = svc.GenerateFinals(ctx)
	assert.ErrorIs(t, err, leagues.ErrInvalidStage)

	semis, err := svc.StartFinalFour(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", semis.SemifinalOne.Home.Name)
	assert.Equal(t, 1, semis.SemifinalOne.Home.Seed)
	assert.Equal(t, "D", semis.SemifinalOne.Away.Name)
	assert.Equal(t, 4, semis.SemifinalOne.Away.Seed)
	assert.Equal(t, "B", semis.SemifinalTwo.Home.Name)
	assert.Equal(t, "C", semis.SemifinalTwo.Away.Name)

	_, err = svc.StartFinalFour(ctx)
	assert.ErrorIs(t, err, leagues.ErrInvalidStage)

	_, err = svc.GenerateFinals(ctx)
	assert.ErrorIs(t, err, leagues.ErrSemifinalsIncomplete)

	// D upsets A, B beats C.
	_, err = svc.RecordScore(ctx, leagues.SemifinalOneID, "18", "21")
	require.NoError(t, err)
	_, err = svc.RecordScore(ctx, leagues.SemifinalTwoID, "21", "19")
	require.NoError(t, err)

	finals, err := svc.GenerateFinals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "D", finals.Final.Home.Name)
	assert.Equal(t, "B", finals.Final.Away.Name)
	assert.Equal(t, "A", finals.ThirdPlace.Home.Name)
	assert.Equal(t, "C", finals.ThirdPlace.Away.Name)

	_, err = svc.GenerateFinals(ctx)
	assert.ErrorIs(t, err, leagues.ErrFinalsExist)

	_, err = svc.RecordScore(ctx, leagues.SemifinalOneID, "21", "18")
	assert.ErrorIs(t, err, ErrBracketLocked)

	_, ok, err := svc.Champion(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.RecordScore(ctx, leagues.FinalID, "20", "22")
	require.NoError(t, err)

	champion, ok, err := svc.Champion(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B", champion.Team.Name)
	assert.Equal(t, "D", champion.RunnerUp.Name)

	hall, err := svc.HallOfFame(ctx)
	require.NoError(t, err)
	require.Len(t, hall, 1)
	assert.Equal(t, state.SeasonID, hall[0].SeasonID)
	assert.Equal(t, "B", hall[0].Champion.Name)
	assert.Equal(t, "D", hall[0].RunnerUp.Name)
	assert.Equal(t, "D 20 - 22 B", hall[0].FinalScore)

	_, archived, err := svc.ArchiveChampion(ctx)
	require.NoError(t, err)
	assert.False(t, archived, "archiving an unchanged result should be a no-op")

	state, err = svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, leagues.StagePlayoff, state.Stage)
	require.NotNil(t, state.Champion)
	assert.Equal(t, "B", state.Champion.Team.Name)
}

func TestRegistrationClosesWhenSeasonStarts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	teams := registerTeams(t, svc, "A", "B", "C")

	_, err := svc.StartRegularSeason(ctx, seasonStart)
	require.NoError(t, err)

	_, err = svc.RegisterTeam(ctx, "Late", roster("x", "y", "z"))
	assert.ErrorIs(t, err, leagues.ErrInvalidStage)
	assert.ErrorIs(t, svc.DeleteTeam(ctx, teams["A"].ID), leagues.ErrInvalidStage)

	_, err = svc.StartRegularSeason(ctx, seasonStart)
	assert.ErrorIs(t, err, leagues.ErrInvalidStage)

	matches, err := svc.Matches(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 3, "three teams play three games")
}

func TestStartRegularSeasonNeedsTwoTeams(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerTeams(t, svc, "Solo")

	_, err := svc.StartRegularSeason(ctx, seasonStart)
	assert.ErrorIs(t, err, leagues.ErrInsufficientTeams)

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, leagues.StageRegistration, state.Stage)
	assert.Empty(t, state.SeasonID)
}

func TestFinalFourNeedsFourTeams(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerTeams(t, svc, "A", "B", "C")

	_, err := svc.StartRegularSeason(ctx, seasonStart)
	require.NoError(t, err)

	_, err = svc.StartFinalFour(ctx)
	assert.ErrorIs(t, err, leagues.ErrInsufficientStandings)

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, leagues.StageRegular, state.Stage)

	matches, err := svc.Matches(ctx)
	require.NoError(t, err)
	for _, m := range matches {
		assert.True(t, m.IsRegular(), "no playoff match should be stored")
	}
}

func TestScoreErrorsLeaveMatchUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	registerTeams(t, svc, "A", "B")

	schedule, err := svc.StartRegularSeason(ctx, seasonStart)
	require.NoError(t, err)
	id := schedule.Matches[0].ID

	_, err = svc.RecordScore(ctx, "m_missing", "1", "2")
	assert.ErrorIs(t, err, leagues.ErrMatchNotFound)

	_, err = svc.RecordScore(ctx, id, "12", "12")
	assert.ErrorIs(t, err, leagues.ErrDrawNotAllowed)

	_, err = svc.RecordScore(ctx, id, "twelve", "3")
	assert.ErrorIs(t, err, leagues.ErrInvalidScore)

	m, err := svc.Match(ctx, id)
	require.NoError(t, err)
	assert.False(t, m.Played)
	assert.Nil(t, m.HomeScore)

	m, err = svc.RecordScore(ctx, id, "12", "9")
	require.NoError(t, err)
	assert.True(t, m.Played)

	m, err = svc.ClearScore(ctx, id)
	require.NoError(t, err)
	assert.False(t, m.Played)

	stored, err := svc.Match(ctx, id)
	require.NoError(t, err)
	assert.False(t, stored.Played)
	assert.Nil(t, stored.AwayScore)
}

func playToChampion(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	teams := registerTeams(t, svc, "A", "B", "C", "D")
	_, err := svc.StartRegularSeason(ctx, seasonStart)
	require.NoError(t, err)
	playRegularSeason(t, svc, rankByRegistration(teams, "A", "B", "C", "D"))
	_, err = svc.StartFinalFour(ctx)
	require.NoError(t, err)
	for _, id := range []string{leagues.SemifinalOneID, leagues.SemifinalTwoID} {
		_, err = svc.RecordScore(ctx, id, "21", "10")
		require.NoError(t, err)
	}
	_, err = svc.GenerateFinals(ctx)
	require.NoError(t, err)
	_, err = svc.RecordScore(ctx, leagues.FinalID, "21", "17")
	require.NoError(t, err)
}

func TestClearingFinalRemovesHallOfFameEntry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	playToChampion(t, svc)

	hall, err := svc.HallOfFame(ctx)
	require.NoError(t, err)
	require.Len(t, hall, 1)
	assert.Equal(t, "A", hall[0].Champion.Name)
	assert.Equal(t, "A 21 - 17 B", hall[0].FinalScore)

	_, err = svc.ClearScore(ctx, leagues.FinalID)
	require.NoError(t, err)

	hall, err = svc.HallOfFame(ctx)
	require.NoError(t, err)
	assert.Empty(t, hall)

	// Correcting the final replaces the entry rather than adding one.
	_, err = svc.RecordScore(ctx, leagues.FinalID, "19", "21")
	require.NoError(t, err)
	_, err = svc.RecordScore(ctx, leagues.FinalID, "18", "21")
	require.NoError(t, err)
	hall, err = svc.HallOfFame(ctx)
	require.NoError(t, err)
	require.Len(t, hall, 1)
	assert.Equal(t, "B", hall[0].Champion.Name)
	assert.Equal(t, "A 18 - 21 B", hall[0].FinalScore)
}

func TestReset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	playToChampion(t, svc)

	err := svc.Reset(ctx, ResetOptions{Confirm: "reset"})
	assert.ErrorIs(t, err, ErrResetNotConfirmed)

	require.NoError(t, svc.Reset(ctx, ResetOptions{Confirm: ResetConfirmation, KeepTeams: true}))

	state, err := svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, leagues.StageRegistration, state.Stage)
	assert.Equal(t, 4, state.TeamCount)
	assert.Empty(t, state.SeasonID)
	assert.Nil(t, state.Champion)

	matches, err := svc.Matches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	hall, err := svc.HallOfFame(ctx)
	require.NoError(t, err)
	assert.Len(t, hall, 1, "the hall of fame survives a reset")

	// A second season archives under a new season id.
	_, err = svc.StartRegularSeason(ctx, seasonStart.AddDate(0, 3, 0))
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, ResetOptions{Confirm: ResetConfirmation}))
	teams, err := svc.Teams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestBootstrapSeedsDemoTeamsOnce(t *testing.T) {
	svc := NewService(testutil.NewTestDB(t), Options{MinPlayers: 3, MaxPlayers: 4, SeedDemoTeams: true})
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx))
	require.NoError(t, svc.Bootstrap(ctx))

	teams, err := svc.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, len(demoTeams))
	for i, team := range teams {
		assert.Equal(t, demoTeams[i].name, team.Name)
		assert.Len(t, team.Players, 3)
	}
}

func TestParseStartDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	svc := NewService(testutil.NewTestDB(t), Options{Location: loc})

	date, err := svc.ParseStartDate("2024-05-15")
	require.NoError(t, err)
	assert.Equal(t, loc, date.Location())
	assert.Equal(t, 15, date.Day())

	_, err = svc.ParseStartDate("")
	assert.ErrorIs(t, err, leagues.ErrMissingStartDate)

	_, err = svc.ParseStartDate("15/05/2024")
	assert.Error(t, err)
}

func TestManyTeamsScheduleIsStored(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		name := "Team " + strconv.Itoa(i)
		_, err := svc.RegisterTeam(ctx, name, roster("a", "b", "c"))
		require.NoError(t, err)
	}

	schedule, err := svc.StartRegularSeason(ctx, seasonStart)
	require.NoError(t, err)
	assert.Equal(t, 7, schedule.Rounds)
	assert.Len(t, schedule.Matches, 21)

	stored, err := svc.Matches(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 21)
	for i := 1; i < len(stored); i++ {
		assert.LessOrEqual(t, stored[i-1].RoundIndex, stored[i].RoundIndex)
	}
}
