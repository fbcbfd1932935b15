package handlers

import (
	"context"

	"github.com/jstittsworth/contrarian-dfs/internal/ingest"
	"github.com/jstittsworth/contrarian-dfs/internal/services"
)

// PlayerTable is the read side of the player table used by every handler.
type PlayerTable interface {
	Snapshot(ctx context.Context) (*services.TableSnapshot, error)
}

// TableAdmin is the write side used by the admin endpoints.
type TableAdmin interface {
	PlayerTable
	Import(ctx context.Context, raws []ingest.RawPlayer, replace bool) (*services.ImportResult, error)
	Reload(ctx context.Context) (*services.TableSnapshot, error)
}
