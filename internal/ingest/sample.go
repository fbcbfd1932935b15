package ingest

// SamplePlayers is the demo table served when no data source is loaded.
func SamplePlayers() []RawPlayer {
	rows := []struct {
		name, position, team string
		rank                 int
		ownership, points    float64
		salary               int
		contrarian           float64
	}{
		{"Josh Allen", "QB", "BUF", 1, 35.2, 24.8, 8500, 65.2},
		{"Lamar Jackson", "QB", "BAL", 2, 12.8, 23.2, 8200, 88.4},
		{"Derrick Henry", "RB", "BAL", 1, 28.5, 18.5, 7800, 72.1},
		{"Christian McCaffrey", "RB", "SF", 2, 8.1, 17.8, 8000, 91.5},
		{"Cooper Kupp", "WR", "LAR", 1, 42.1, 16.2, 7500, 58.3},
		{"Davante Adams", "WR", "NYJ", 2, 15.3, 15.8, 7200, 79.8},
		{"Travis Kelce", "TE", "KC", 1, 31.7, 13.5, 6800, 68.9},
		{"Mark Andrews", "TE", "BAL", 2, 11.2, 12.1, 6200, 82.7},
	}

	players := make([]RawPlayer, 0, len(rows))
	for _, r := range rows {
		players = append(players, RawPlayer{
			Name:            r.name,
			Position:        r.position,
			Team:            r.team,
			Rank:            r.rank,
			OwnershipPct:    r.ownership,
			ProjectedPoints: r.points,
			Salary:          r.salary,
			ContrarianScore: r.contrarian,
		})
	}
	return players
}
