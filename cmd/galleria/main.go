package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sagarc03/galleria/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "galleria",
	Short:   "Photo gallery REST API server",
	Long: `Galleria is a photo gallery server. Users sign up, log in with
Basic auth to get a bearer token, and manage galleries of pictures
stored on the local filesystem or in an S3 bucket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFiles, _ := cmd.Flags().GetStringSlice("env-file")
		if err := loadEnvFiles(envFiles); err != nil {
			return err
		}

		configFiles, _ := cmd.Flags().GetStringSlice("config")
		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable; later files override earlier ones (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "dotenv file to load before reading config (default: .env if present)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (default: sqlite, env: GALLERIA_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: galleria.db, env: GALLERIA_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("storage-type", "", "image storage: filesystem, s3 (default: filesystem, env: GALLERIA_STORAGE_TYPE)")
	rootCmd.PersistentFlags().String("storage-path", "", "image directory for filesystem storage (default: ./data, env: GALLERIA_STORAGE_PATH)")
}

// loadEnvFiles loads dotenv files into the process environment without
// overriding variables that are already set. With no files given, a
// .env in the working directory is loaded when present.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}

	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	slog.Debug("loaded env files", "files", files)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
