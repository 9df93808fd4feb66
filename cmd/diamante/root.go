// Command diamante serves the Pinturas Diamante catalog site and generates its
// static SEO artefacts.
//
// Configuration is read from defaults, then the optional file given with
// --config (or DIAMANTE_CONFIG_FILE), then DIAMANTE_<SECTION>_<OPTION>
// environment variables such as DIAMANTE_SERVER_PORT.
package main

import (
	"fmt"
	"os"

	"github.com/pinturas-diamante/catalog-site/internal/config"
	"github.com/pinturas-diamante/catalog-site/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "diamante",
		Short: "Pinturas Diamante catalog site",
		Long: `diamante serves the Pinturas Diamante catalog, cart and SEO API and
generates the prerendered pages, sitemap and robots files for crawlers.

Quick Start:
  diamante serve                  Start the web server
  diamante prerender --out dist   Write static SEO pages
  diamante seo-check              Validate SEO metadata of the catalog`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (can also use DIAMANTE_CONFIG_FILE env var)")
	cmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newPrerenderCmd(opts),
		newSEOCheckCmd(opts),
		newDBInitCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load resolves the configuration and builds the logger.
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	file := o.configFile
	if file == "" {
		file = os.Getenv(config.EnvPrefix + "_CONFIG_FILE")
	}

	cfg, err := config.Load(viper.New(), file)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}
