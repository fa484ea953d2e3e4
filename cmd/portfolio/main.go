package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/artpar/portfolio/internal/core/auth"
	"github.com/artpar/portfolio/internal/shell/seed"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const appName = "portfolio"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := rootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var sErr *ServerError
		if errors.As(err, &sErr) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, sErr)
			return sErr.ExitCode
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return ExitConfigError
	}
	return ExitSuccess
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Portfolio content service",
		Long:          "Serves projects, blog posts, experiences and research records over a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before configuration")

	cmd.AddCommand(serveCmd(), seedCmd(), hashPasswordCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (built %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// loadEnvFile loads path into the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &ServerError{Op: "loadEnvFile", Err: err, ExitCode: ExitConfigError}
	}
	return nil
}

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return &ServerError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
			}

			logger := SetupLogger(cfg)
			logger.Info("starting portfolio",
				"version", Version,
				"config", configPath,
			)

			server, err := NewServer(cfg, logger)
			if err != nil {
				logger.Error("failed to create server", "error", err)
				return err
			}
			return server.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	return cmd
}

func seedCmd() *cobra.Command {
	var (
		configPath string
		seedFile   string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load an admin user and sample records from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return &ServerError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
			}
			logger := SetupLogger(cfg)

			f, err := seed.Load(seedFile)
			if err != nil {
				return &ServerError{Op: "seed.Load", Err: err, ExitCode: ExitSeedError}
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			rep, err := seed.NewSeeder(s, logger).Run(cmd.Context(), f)
			if err != nil {
				return &ServerError{Op: "seed.Run", Err: err, ExitCode: ExitSeedError}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d new and %d updated records\n", rep.Created, rep.Updated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "Seed file path")
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for use in a seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

