package main

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/result-atlas/pkg/server"
	"github.com/de-tools/result-atlas/pkg/services/config"
	"github.com/de-tools/result-atlas/pkg/services/projects"
)

var (
	projectsPath string
	watch        bool
	debounce     time.Duration
	origins      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve ingested project results over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&projectsPath, "projects", "p", "projects.ini",
		"Path to the project registry (one ini section per project)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Re-ingest a project when files under its root change")
	rootCmd.Flags().DurationVar(&debounce, "debounce", projects.DefaultDebounce, "Quiet period before a watched project is re-ingested")
	rootCmd.Flags().StringVar(&origins, "allowed-origins", "*", "Comma separated CORS origins")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(projectsPath)
	if err != nil {
		return fmt.Errorf("failed to create project registry: %w", err)
	}

	svc := projects.NewService(registry)
	if err := svc.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize projects: %w", err)
	}

	logger.Info().Msgf("Project registry `%s` loaded with the following projects:", projectsPath)
	for name, root := range svc.Roots() {
		logger.Info().Msgf("Name: `%s`, Root: `%s`", name, root)
	}

	if watch {
		watcher, err := projects.NewWatcher(svc, svc.Roots(), debounce)
		if err != nil {
			return fmt.Errorf("failed to create project watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start project watcher: %w", err)
		}
		defer watcher.Stop()
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		return fmt.Errorf("missing SERVER_HOST or SERVER_PORT configuration")
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		AllowedOrigins:  strings.Split(origins, ","),
		Dependencies: server.Dependencies{
			Projects: svc,
			Logger:   logger,
		},
	})
	return api.Start()
}
