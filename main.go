package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"glyph-panel/api"
	"glyph-panel/catalog"
	"glyph-panel/config"
	"glyph-panel/editor"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "glyph-panel",
		Short: "Glyph palette workbench server",
		Long: "Serves an editing workbench with a side panel of special-character\n" +
			"glyph buttons. Clicking a glyph inserts it at every cursor in the\n" +
			"active editor.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default glyphpanel.yaml in the working directory)")
	return cmd
}

func run(cfg *config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	source := catalog.Source(func() ([]byte, error) { return bundledSnippets, nil })
	if cfg.SnippetFile != "" {
		source = catalog.FileSource(cfg.SnippetFile)
	}

	manager := editor.NewManager()
	server := api.NewServer(manager, source, staticFiles, log)

	if cfg.SnippetFile != "" && cfg.Watch {
		w, err := catalog.Watch(cfg.SnippetFile, server.RefreshPanels, log)
		if err != nil {
			log.Warn().Err(err).Msg("snippet watcher unavailable; panels will not live-reload")
		} else {
			defer w.Close()
		}
	}

	log.Info().Str("addr", cfg.Addr).Msg("glyph-panel listening")
	return http.ListenAndServe(cfg.Addr, server.Routes())
}
