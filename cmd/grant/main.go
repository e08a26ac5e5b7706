// Command grant runs the bonus vacation batch once over the stored roster.
//
//	grant -db grants.db                  send with the configured provider
//	grant -db :memory: -demo -dry-run    log the demo roster's emails
//	grant -now 2025-01-01                evaluate tenure at a fixed date
//
// Any failure exits with status 1 after the database is closed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/warp/vacation-grant/config"
	"github.com/warp/vacation-grant/email"
	"github.com/warp/vacation-grant/generic"
	"github.com/warp/vacation-grant/store/sqlite"
	"github.com/warp/vacation-grant/vacation"
)

type options struct {
	dbPath string
	now    string
	dryRun bool
	demo   bool
}

func main() {
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.dbPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&opts.now, "now", "", "evaluation date YYYY-MM-DD (default: today)")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "log emails instead of sending them")
	flag.BoolVar(&opts.demo, "demo", false, "reset the database and load the demo roster first")
	flag.Parse()

	if err := run(context.Background(), cfg, opts); err != nil {
		log.Printf("[Grant] %v", err)
		os.Exit(1)
	}
	log.Println("[Grant] Completed")
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	var clock generic.Clock = generic.RealClock{}
	if opts.now != "" {
		at, err := generic.ParseDate(opts.now)
		if err != nil {
			return fmt.Errorf("invalid -now: %w", err)
		}
		clock = generic.FixedClock{At: at}
	}

	store, err := sqlite.New(opts.dbPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	if opts.demo {
		if err := store.LoadDemo(ctx); err != nil {
			return fmt.Errorf("load demo roster: %w", err)
		}
	}

	var sender email.Sender = email.NewLogSender()
	if !opts.dryRun {
		sender = email.New(cfg.ResendAPIKey, cfg.EmailFrom)
	}

	payroll, dir, err := store.LoadRoster(ctx)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	notifier := vacation.NewNotifier(sender, clock)
	notifier.Ledger = store

	log.Printf("[Grant] Running for %d payroll entries", len(payroll))
	if err := notifier.GrantVacation(ctx, payroll, dir); err != nil {
		return fmt.Errorf("stopped: %w", err)
	}
	return nil
}
