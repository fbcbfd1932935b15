package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jstittsworth/contrarian-dfs/internal/app"
	"github.com/jstittsworth/contrarian-dfs/pkg/config"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		addr       = flag.String("http", "", "serve streamable HTTP on this address instead of stdio")
		mcpPath    = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		authHeader = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// stdout carries the protocol in stdio mode
	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}
	defer deps.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "contrarian-dfs-mcp",
		Version: "0.1.0",
	}, nil)

	registry := registerTools(server, &toolset{
		table:      deps.Table,
		classifier: deps.Classifier,
		salaryCap:  cfg.SalaryCap,
	})

	if *addr == "" {
		log.WithField("tools", len(registry)).Info("MCP server on stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			log.Fatalf("MCP server failed: %v", err)
		}
		return
	}

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	withAuth := apiKeyAuth(strings.TrimSpace(os.Getenv("MCP_API_KEY")), *authHeader)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.Handle(*mcpPath, withAuth(handler.ServeHTTP))

	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Infof("MCP HTTP server listening on %s%s", *addr, *mcpPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("MCP HTTP server failed: %v", err)
	}
}

// apiKeyAuth checks the key header or a bearer token. An empty key disables
// the check.
func apiKeyAuth(apiKey, header string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(header))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}
}
