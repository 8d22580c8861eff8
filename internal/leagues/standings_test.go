package leagues

import (
	"testing"
	"time"
)

func played(t *testing.T, m Match, home, away int) Match {
	t.Helper()
	out, err := RecordScore(m, home, away)
	if err != nil {
		t.Fatalf("record score %s: %v", m.ID, err)
	}
	return out
}

func regularMatch(id string, home, away Team) Match {
	return Match{ID: id, Type: MatchRegular, Home: home.Snapshot(), Away: away.Snapshot()}
}

func TestComputeStandingsTotals(t *testing.T) {
	teams := makeTeams(6)
	schedule, err := GenerateSchedule(teams, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}

	matches := make([]Match, len(schedule.Matches))
	for i, m := range schedule.Matches {
		if i%2 == 0 {
			matches[i] = played(t, m, 15, 10+i%4)
		} else {
			matches[i] = played(t, m, 8+i%3, 16)
		}
	}

	standings := ComputeStandings(teams, matches)
	if len(standings) != len(teams) {
		t.Fatalf("expected %d standings, got %d", len(teams), len(standings))
	}

	wins, losses, pf, pa, points := 0, 0, 0, 0, 0
	for _, s := range standings {
		wins += s.Wins
		losses += s.Losses
		pf += s.PointsFor
		pa += s.PointsAgainst
		points += s.Points
		if s.PointDifferential != s.PointsFor-s.PointsAgainst {
			t.Fatalf("team %s: differential %d does not match %d-%d", s.TeamID(), s.PointDifferential, s.PointsFor, s.PointsAgainst)
		}
		if s.MatchesPlayed != s.Wins+s.Losses {
			t.Fatalf("team %s: played %d but %d wins and %d losses", s.TeamID(), s.MatchesPlayed, s.Wins, s.Losses)
		}
	}
	if wins != len(matches) || losses != len(matches) {
		t.Fatalf("expected %d wins and losses, got %d and %d", len(matches), wins, losses)
	}
	if pf != pa {
		t.Fatalf("points for %d should equal points against %d", pf, pa)
	}
	if points != 3*len(matches) {
		t.Fatalf("expected %d league points awarded, got %d", 3*len(matches), points)
	}
}

func TestComputeStandingsIgnoresUnplayedAndPlayoff(t *testing.T) {
	teams := makeTeams(2)
	unplayed := regularMatch("m1", teams[0], teams[1])
	playoff := played(t, Match{ID: FinalID, Type: MatchPlayoff, Stage: PlayoffFinal, Home: teams[0].Snapshot(), Away: teams[1].Snapshot()}, 21, 3)

	standings := ComputeStandings(teams, []Match{unplayed, playoff})
	for _, s := range standings {
		if s.MatchesPlayed != 0 || s.Points != 0 {
			t.Fatalf("team %s should have no results, got %+v", s.TeamID(), s)
		}
	}
}

func TestComputeStandingsTieBreakers(t *testing.T) {
	teams := makeTeams(4)
	a, b, c, d := teams[0], teams[1], teams[2], teams[3]

	// Everyone finishes on three points; differential orders the table.
	matches := []Match{
		played(t, regularMatch("m1", a, c), 11, 10),
		played(t, regularMatch("m2", b, d), 21, 5),
		played(t, regularMatch("m3", c, b), 15, 12),
		played(t, regularMatch("m4", d, a), 13, 11),
	}
	standings := ComputeStandings(teams, matches)
	wantOrder := []string{b.ID, c.ID, a.ID, d.ID}
	for i, want := range wantOrder {
		if standings[i].Points != 3 {
			t.Fatalf("test setup: expected every team on 3 points, got %+v", standings[i])
		}
		if standings[i].TeamID() != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, standings[i].TeamID())
		}
	}

	// Level on points and differential; points-for decides.
	matches = []Match{
		played(t, regularMatch("m1", a, c), 20, 10),
		played(t, regularMatch("m2", b, d), 12, 2),
		played(t, regularMatch("m3", c, a), 14, 10),
		played(t, regularMatch("m4", d, b), 12, 8),
	}
	standings = ComputeStandings(teams, matches)
	if standings[0].Points != standings[1].Points || standings[0].PointDifferential != standings[1].PointDifferential {
		t.Fatalf("test setup: expected top two level, got %+v and %+v", standings[0], standings[1])
	}
	if standings[0].TeamID() != a.ID {
		t.Fatalf("expected %s first on points for, got %s", a.ID, standings[0].TeamID())
	}
}

func TestComputeStandingsFullTieKeepsTeamOrder(t *testing.T) {
	teams := makeTeams(3)
	standings := ComputeStandings(teams, nil)
	for i, s := range standings {
		if s.TeamID() != teams[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, teams[i].ID, s.TeamID())
		}
	}
}

func TestComputeStandingsSkipsUnknownTeams(t *testing.T) {
	teams := makeTeams(3)
	ghost := Team{ID: "ghost", Name: "Deleted"}
	matches := []Match{
		played(t, regularMatch("m1", teams[0], ghost), 21, 0),
		played(t, regularMatch("m2", teams[1], teams[2]), 9, 8),
	}

	standings := ComputeStandings(teams, matches)
	if len(standings) != 3 {
		t.Fatalf("expected 3 standings, got %d", len(standings))
	}
	if standings[0].TeamID() != teams[1].ID {
		t.Fatalf("expected %s to lead, got %s", teams[1].ID, standings[0].TeamID())
	}
	for _, s := range standings {
		if s.TeamID() == teams[0].ID && s.MatchesPlayed != 0 {
			t.Fatalf("match against a deleted team should be skipped")
		}
	}
}

func TestComputeStandingsWinnerAndLoserPoints(t *testing.T) {
	teams := makeTeams(2)
	standings := ComputeStandings(teams, []Match{played(t, regularMatch("m1", teams[0], teams[1]), 9, 21)})

	leader, trailer := standings[0], standings[1]
	if leader.TeamID() != teams[1].ID || leader.Points != 2 || leader.Wins != 1 {
		t.Fatalf("unexpected leader %+v", leader)
	}
	if trailer.Points != 1 || trailer.Losses != 1 || trailer.PointDifferential != -12 {
		t.Fatalf("unexpected trailer %+v", trailer)
	}
}
