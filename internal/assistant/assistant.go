// Package assistant answers free-text strategy questions by mapping them
// onto a closed set of intents. Each intent has a pure formatter over the
// already-classified player table.
package assistant

import (
	"fmt"
	"strings"

	"github.com/jstittsworth/contrarian-dfs/internal/insights"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
)

type Intent string

const (
	IntentPlayTypes       Intent = "play_types"
	IntentContrarianPicks Intent = "contrarian_picks"
	IntentStacking        Intent = "stacking"
	IntentWeather         Intent = "weather"
	IntentGameStrategy    Intent = "game_strategy"
	IntentHelp            Intent = "help"
)

const contrarianPickCount = 3

// Response is an answered question.
type Response struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`
}

type rule struct {
	intent   Intent
	keywords []string
}

// Checked in order; the first group with a matching keyword wins.
var rules = []rule{
	{IntentPlayTypes, []string{"smash", "leverage", "chalk", "play type"}},
	{IntentContrarianPicks, []string{"contrarian", "best plays", "who should"}},
	{IntentStacking, []string{"stacking", "correlation", "qb wr"}},
	{IntentWeather, []string{"weather", "wind", "rain", "outdoor"}},
	{IntentGameStrategy, []string{"cash game", "tournament", "gpp", "strategy"}},
}

var formatters = map[Intent]func([]models.PlayerRecord) string{
	IntentPlayTypes:       func([]models.PlayerRecord) string { return playTypesText },
	IntentContrarianPicks: contrarianPicks,
	IntentStacking:        func([]models.PlayerRecord) string { return stackingText },
	IntentWeather:         func([]models.PlayerRecord) string { return weatherText },
	IntentGameStrategy:    func([]models.PlayerRecord) string { return gameStrategyText },
	IntentHelp:            func([]models.PlayerRecord) string { return helpText },
}

// Intents lists every recognised intent, help last.
func Intents() []Intent {
	out := make([]Intent, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.intent)
	}
	return append(out, IntentHelp)
}

func (i Intent) Valid() bool {
	_, ok := formatters[i]
	return ok
}

// Recognize maps a question onto an intent. Unmatched questions get help.
func Recognize(question string) Intent {
	q := strings.ToLower(question)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.intent
			}
		}
	}
	return IntentHelp
}

// Respond formats the answer for an intent. Unknown intents get help.
func Respond(intent Intent, table []models.PlayerRecord) Response {
	format, ok := formatters[intent]
	if !ok {
		intent, format = IntentHelp, formatters[IntentHelp]
	}
	return Response{Intent: intent, Text: format(table)}
}

// Ask recognises and answers in one step.
func Ask(question string, table []models.PlayerRecord) Response {
	return Respond(Recognize(question), table)
}

func contrarianPicks(table []models.PlayerRecord) string {
	if len(table) == 0 {
		return "Load your fantasy data to see personalized contrarian recommendations."
	}

	picks := insights.FilterPlayers(table, insights.Filter{PlayType: models.PlaySmash, Limit: contrarianPickCount})
	if len(picks) == 0 {
		return "No clear SMASH plays identified in current data. Look for top-5 players under 15% ownership."
	}

	var b strings.Builder
	b.WriteString("**This Week's Best Contrarian Plays:**\n\n")
	for _, p := range picks {
		fmt.Fprintf(&b, "- **%s** (%s) - Rank #%d, %.1f%% owned\n", p.Name, p.Position, p.Rank, p.OwnershipPct)
	}
	b.WriteString("\nThese are elite players that most people are sleeping on.")
	return b.String()
}
