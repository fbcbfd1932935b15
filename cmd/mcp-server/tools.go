package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jstittsworth/contrarian-dfs/internal/assistant"
	"github.com/jstittsworth/contrarian-dfs/internal/classifier"
	"github.com/jstittsworth/contrarian-dfs/internal/insights"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/internal/optimizer"
	"github.com/jstittsworth/contrarian-dfs/internal/services"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type TableSource interface {
	Snapshot(ctx context.Context) (*services.TableSnapshot, error)
}

type ClassifyArgs struct {
	Rank         int     `json:"rank" jsonschema:"Positional rank, 1 is best (required)"`
	OwnershipPct float64 `json:"ownership_pct" jsonschema:"Projected ownership percentage 0-100 (required)"`
}

type BuildLineupArgs struct {
	Strategy    string   `json:"strategy" jsonschema:"tournament|cash|ultra_contrarian (default tournament)"`
	SalaryCap   int      `json:"salary_cap,omitempty" jsonschema:"Salary cap in dollars (default the configured cap)"`
	MustInclude []string `json:"must_include,omitempty" jsonschema:"Player names that must be rostered"`
	Exclude     []string `json:"exclude,omitempty" jsonschema:"Player names to leave out"`
}

type AskArgs struct {
	Question string `json:"question" jsonschema:"Free-text strategy question (required)"`
}

type ContrarianPlaysArgs struct {
	Position     string  `json:"position,omitempty" jsonschema:"QB|RB|WR|TE (default all)"`
	PlayType     string  `json:"play_type,omitempty" jsonschema:"SMASH_PLAY|LEVERAGE_PLAY|CHALK_PLAY|NEUTRAL (default all)"`
	MaxOwnership float64 `json:"max_ownership,omitempty" jsonschema:"Only players owned at or below this percentage"`
	Limit        int     `json:"limit,omitempty" jsonschema:"Maximum players returned (default 10)"`
}

type TournamentArgs struct {
	Field string `json:"field" jsonschema:"large|mid|small|single_entry (default large)"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// toolset holds what every tool handler reads from.
type toolset struct {
	table      TableSource
	classifier *classifier.Classifier
	salaryCap  int
}

func registerTools(server *mcp.Server, ts *toolset) []toolInfo {
	registry := make([]toolInfo, 0, 5)

	addTool(server, &registry, &mcp.Tool{
		Name:        "classify_player",
		Description: "Play type (SMASH/LEVERAGE/CHALK/NEUTRAL) and contrarian score for a rank and ownership",
	}, ts.classify)

	addTool(server, &registry, &mcp.Tool{
		Name:        "build_lineup",
		Description: "Greedy QB/2RB/3WR/TE/FLEX lineup under a salary cap for a strategy",
	}, ts.buildLineup)

	addTool(server, &registry, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Answer a DFS strategy question from the current player table",
	}, ts.ask)

	addTool(server, &registry, &mcp.Tool{
		Name:        "contrarian_plays",
		Description: "Players sorted by contrarian score, optionally filtered",
	}, ts.contrarianPlays)

	addTool(server, &registry, &mcp.Tool{
		Name:        "tournament_picks",
		Description: "Field-size specific player recommendations",
	}, ts.tournamentPicks)

	return registry
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func (ts *toolset) classify(ctx context.Context, req *mcp.CallToolRequest, args ClassifyArgs) (*mcp.CallToolResult, any, error) {
	if args.Rank < 1 {
		return toolError(fmt.Errorf("rank must be at least 1")), nil, nil
	}
	if args.OwnershipPct < 0 || args.OwnershipPct > 100 {
		return toolError(fmt.Errorf("ownership_pct must be between 0 and 100")), nil, nil
	}
	playType, score := ts.classifier.Classify(args.Rank, args.OwnershipPct)
	return toolJSON(map[string]any{
		"play_type":        playType,
		"contrarian_score": score,
	})
}

func (ts *toolset) buildLineup(ctx context.Context, req *mcp.CallToolRequest, args BuildLineupArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Strategy) == "" {
		args.Strategy = string(models.StrategyTournament)
	}
	strategy, err := models.ParseStrategy(args.Strategy)
	if err != nil {
		return toolError(err), nil, nil
	}
	salaryCap := args.SalaryCap
	if salaryCap <= 0 {
		salaryCap = ts.salaryCap
	}

	snap, err := ts.table.Snapshot(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}

	lineup, err := optimizer.BuildLineup(snap.Players, optimizer.BuildRequest{
		Strategy:    strategy,
		SalaryCap:   salaryCap,
		MustInclude: args.MustInclude,
		Exclude:     args.Exclude,
	})
	var nvl *optimizer.NoValidLineupError
	if errors.As(err, &nvl) {
		// A failed build is an answer, not a tool failure.
		return toolJSON(map[string]any{"valid": false, "kind": nvl.Kind, "reason": nvl.Reason})
	}
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(map[string]any{"valid": true, "lineup": lineup})
}

func (ts *toolset) ask(ctx context.Context, req *mcp.CallToolRequest, args AskArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Question) == "" {
		return toolError(fmt.Errorf("question is required")), nil, nil
	}
	snap, err := ts.table.Snapshot(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	resp := assistant.Ask(args.Question, snap.Players)
	return toolText(resp.Text), nil, nil
}

func (ts *toolset) contrarianPlays(ctx context.Context, req *mcp.CallToolRequest, args ContrarianPlaysArgs) (*mcp.CallToolResult, any, error) {
	f := insights.Filter{MaxOwnership: args.MaxOwnership, Limit: args.Limit}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if args.Position != "" {
		f.Position = models.ParsePosition(args.Position)
		if f.Position == models.PositionFLEX {
			return toolError(fmt.Errorf("unknown position %q", args.Position)), nil, nil
		}
	}
	if args.PlayType != "" {
		f.PlayType = models.PlayType(strings.ToUpper(strings.TrimSpace(args.PlayType)))
		if !f.PlayType.Valid() {
			return toolError(fmt.Errorf("unknown play type %q", args.PlayType)), nil, nil
		}
	}

	snap, err := ts.table.Snapshot(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(map[string]any{
		"data_version": snap.Version,
		"players":      insights.FilterPlayers(snap.Players, f),
	})
}

func (ts *toolset) tournamentPicks(ctx context.Context, req *mcp.CallToolRequest, args TournamentArgs) (*mcp.CallToolResult, any, error) {
	if args.Field == "" {
		args.Field = string(insights.FieldLarge)
	}
	field, err := insights.ParseFieldSize(args.Field)
	if err != nil {
		return toolError(err), nil, nil
	}
	snap, err := ts.table.Snapshot(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(insights.RecommendForField(snap.Players, field))
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(string(b)), nil, nil
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
