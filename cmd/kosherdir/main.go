// Command kosherdir serves and queries the kosher business directory.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/KosherDir/internal/config"
	"github.com/JonMunkholm/KosherDir/internal/core"
	"github.com/JonMunkholm/KosherDir/internal/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		slog.Error("kosherdir failed", "error", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	// filled in by PersistentPreRunE before any subcommand runs
	cfg := &config.Config{}
	var envFile string

	root := &cobra.Command{
		Use:           "kosherdir",
		Short:         "Kosher business directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadFrom(envLookup(envFile))
			if err != nil {
				return err
			}
			*cfg = *loaded

			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file whose values override the environment")

	root.AddCommand(
		serveCmd(cfg),
		listCmd(cfg),
	)
	return root
}

// envLookup layers the dotenv file over the process environment. A missing
// file is not an error.
func envLookup(path string) config.Lookup {
	values, err := godotenv.Read(path)
	if err != nil {
		slog.Debug("no env file loaded, using environment variables", "path", path, "error", err)
		return os.LookupEnv
	}
	return config.Layered(config.MapLookup(values), os.LookupEnv)
}

// newSource routes http(s) origins to the fetcher and everything else to
// the data directory.
func newSource(cfg *config.Config) (*core.OriginRouter, *core.FileSource) {
	files := core.NewFileSource(cfg.Source.DataDir)
	return &core.OriginRouter{
		HTTP:  core.NewHTTPSource(cfg.Source.FetchTimeout, cfg.Source.FetchRetries),
		Files: files,
	}, files
}
