package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/projectmate/backend/internal/config"
	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/internal/services"
)

// One-off maintenance command: prune AI usage logs older than the
// retention window. Pass a day count to override the configured value.
//
//	go run scripts/prune_usage_logs.go [days]
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	days := cfg.Usage.LogRetentionDays
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			fmt.Printf("Invalid day count %q\n", os.Args[1])
			os.Exit(1)
		}
		days = n
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	svc := services.NewUsageCleanupService(models.GetDB(), days)
	before := time.Now().AddDate(0, 0, -days)

	deleted, err := svc.CleanupBefore(before)
	if err != nil {
		fmt.Printf("Failed to prune usage logs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d usage logs older than %s (%d days)\n",
		deleted, before.Format("2006-01-02"), days)
}
