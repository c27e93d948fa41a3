// Package main provides the shopfront CLI entry point. Run without
// arguments for the interactive storefront; `shopfront serve` runs the
// API service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopfront/cmd/shopfront/shop"
	"shopfront/cmd/shopfront/ui"
	"shopfront/internal/assistant"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/logging"
	"shopfront/internal/server"
)

var (
	configPath string
	backendURL string
	addr       string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "shopfront - AI shopping assistant in your terminal",
	Long: `shopfront is a terminal storefront client with an AI shopping
assistant: browse the catalog, search with natural language, chat for
recommendations, and manage a cart.

Run without arguments to start the interactive storefront.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront API service",
	Long: `Starts the HTTP API: catalog listing, relevance search, the chat
assistant, and product feed refresh. The interactive client connects to
this service.`,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "shopfront.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&backendURL, "backend", "", "storefront API base URL")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")
	rootCmd.AddCommand(serveCmd)
}

// runStorefront launches the interactive TUI. Logs go to a file since
// the terminal belongs to bubbletea.
func runStorefront() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err = logging.NewFileLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.BackendTimeout()}
	catalogSvc := catalog.NewClient(cfg.Backend.BaseURL, catalog.WithHTTPClient(httpClient))
	chatSvc := assistant.NewClient(cfg.Backend.BaseURL, assistant.WithHTTPClient(httpClient))

	ctrl := assistant.New(catalogSvc, chatSvc,
		assistant.WithLogger(logger),
		assistant.WithTimeout(cfg.ChatTimeout()),
		assistant.WithSearchLimit(cfg.Chat.SearchLimit),
	)

	model := shop.New(ctrl, catalogSvc, ui.DefaultStyles())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run storefront: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger, err = logging.NewServerLogger(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	repo := server.NewRepository(server.SeedProducts())
	importer := server.NewImporter(nil, logger)
	app := server.NewApp(repo, importer, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Server.CatalogFile != "" {
		watcher, err := server.NewCatalogWatcher(cfg.Server.CatalogFile, repo, logger)
		if err != nil {
			return fmt.Errorf("catalog watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("catalog watcher: %w", err)
		}
		defer watcher.Stop()
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
		_ = app.Shutdown()
	}()

	logger.Info("storefront API listening",
		zap.String("addr", cfg.Server.Addr),
		zap.Int("products", repo.Len()))
	if err := app.Listen(cfg.Server.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
