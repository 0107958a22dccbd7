package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneyman/moneyman/internal/infrastructure/config"
	"github.com/moneyman/moneyman/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moneyman-cli",
		Short: "Moneyman CLI tool",
		Long:  `A command line interface for operating a moneyman deployment.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the moneyman API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema management",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrate(postgres.RunMigrations)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrate(postgres.RunMigrationsDown)
		},
	})

	rootCmd.AddCommand(migrateCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Check server liveness and readiness",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "share [code]",
		Short: "Resolve a read-only share code",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			resolveShare(args[0])
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runMigrate(fn func(databaseURL, migrationsPath string) error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := fn(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied")
}

func checkHealth() {
	client := &http.Client{Timeout: timeout}

	for _, path := range []string{"/health", "/ready"} {
		resp, err := client.Get(endpoint(baseURL, path))
		if err != nil {
			fmt.Printf("Error making request: %v\n", err)
			os.Exit(1)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		fmt.Printf("%s: %d %s\n", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

func resolveShare(code string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(endpoint(baseURL, "/api/share/"+code))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Share code rejected: %d %s\n", resp.StatusCode, strings.TrimSpace(string(body)))
		os.Exit(1)
	}

	var pretty json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&pretty); err != nil {
		fmt.Printf("Error decoding response: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}

// endpoint joins the base URL and path without doubling slashes.
func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
