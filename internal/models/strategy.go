package models

import (
	"fmt"
	"strings"
)

// ParseStrategy accepts the canonical names as well as the dashboard labels.
func ParseStrategy(s string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)

	switch key {
	case "tournament", "gpp", "tournament_(gpp)":
		return StrategyTournament, nil
	case "cash", "cash_game":
		return StrategyCash, nil
	case "ultra_contrarian", "contrarian":
		return StrategyUltraContrarian, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}
