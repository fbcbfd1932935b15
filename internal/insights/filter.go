// Package insights derives read-only views over a classified player table:
// filtered opportunity lists, summary statistics, field-size recommendations
// and data freshness.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
)

// Filter narrows a classified table. Zero values disable a criterion.
type Filter struct {
	Position     models.Position `form:"position" json:"position,omitempty"`
	PlayType     models.PlayType `form:"play_type" json:"play_type,omitempty"`
	MaxOwnership float64         `form:"max_ownership" json:"max_ownership,omitempty"`
	Limit        int             `form:"limit" json:"limit,omitempty"`
}

// FilterPlayers returns the matching players ordered by contrarian score,
// highest first, ties broken by name. The input is not modified.
func FilterPlayers(table []models.PlayerRecord, f Filter) []models.PlayerRecord {
	out := make([]models.PlayerRecord, 0, len(table))
	for _, p := range table {
		if f.Position != "" && p.Position != f.Position {
			continue
		}
		if f.PlayType != "" && p.PlayType != f.PlayType {
			continue
		}
		if f.MaxOwnership > 0 && p.OwnershipPct > f.MaxOwnership {
			continue
		}
		out = append(out, p)
	}

	sortByContrarian(out)

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func sortByContrarian(players []models.PlayerRecord) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].ContrarianScore != players[j].ContrarianScore {
			return players[i].ContrarianScore > players[j].ContrarianScore
		}
		return players[i].Name < players[j].Name
	})
}

func byPlayType(table []models.PlayerRecord, types ...models.PlayType) []models.PlayerRecord {
	want := make(map[models.PlayType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	out := make([]models.PlayerRecord, 0)
	for _, p := range table {
		if want[p.PlayType] {
			out = append(out, p)
		}
	}
	sortByContrarian(out)
	return out
}

// FindPlayer looks a player up by name, ignoring case and surrounding space.
func FindPlayer(table []models.PlayerRecord, name string) (models.PlayerRecord, error) {
	name = strings.TrimSpace(name)
	for _, p := range table {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return models.PlayerRecord{}, fmt.Errorf("%w: player %q", utils.ErrNotFound, name)
}
