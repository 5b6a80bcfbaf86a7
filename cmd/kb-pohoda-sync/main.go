package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/spojenet/kb-pohoda-sync/internal/config"
	"github.com/spojenet/kb-pohoda-sync/internal/importer"
	"github.com/spojenet/kb-pohoda-sync/internal/kb"
	"github.com/spojenet/kb-pohoda-sync/internal/logger"
	"github.com/spojenet/kb-pohoda-sync/internal/pohoda"
	"github.com/spojenet/kb-pohoda-sync/internal/report"
	"github.com/spojenet/kb-pohoda-sync/internal/state"
)

func main() {
	log := logger.New()

	envFile := flag.String("env", ".env", "Path to the .env configuration file")
	scopeFlag := flag.String("scope", "", "Import scope (today, yesterday, last_week, auto, YYYY-MM-DD, start>end); overrides IMPORT_SCOPE")
	dryRun := flag.Bool("dry-run", false, "Resolve, fetch and map but do not write to the ledger")
	reportFlag := flag.String("report", "", "Write a JSON run report to this path; overrides REPORT_FILE")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		// The environment may already be populated, e.g. under systemd.
		log.Debug().Err(err).Str("file", *envFile).Msg("No .env file loaded")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration validation failed")
	}

	if cfg.CertFile != "" {
		if err := config.CheckCertificate(cfg.CertFile, cfg.CertPass); err != nil {
			log.Fatal().Err(err).Msg("Certificate check failed")
		}
	}

	jobID := cfg.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}
	log = log.With().Str("job_id", jobID).Logger()

	scope := cfg.ImportScope
	if *scopeFlag != "" {
		scope = *scopeFlag
	}

	var cursor importer.CursorStore
	var store *state.Store
	if cfg.StateDB != "" {
		var err error
		store, err = state.Open(cfg.StateDB)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.StateDB).Msg("Failed to open state database")
		}
		defer store.Close()
		cursor = store
	}

	bank := kb.NewClient(cfg.KBAPIURL, cfg.ClientID)
	ledger := pohoda.NewConnector(cfg.PohodaURL, cfg.PohodaUsername, cfg.PohodaPassword, cfg.PohodaICO)

	engine := importer.NewKB(bank, ledger, importer.Options{
		AccountID:   cfg.AccountNumber,
		AccessToken: cfg.AccessToken,
		BankIDS:     cfg.PohodaBankIDS,
		JobID:       jobID,
		Cursor:      cursor,
	})
	runner := importer.NewRunner(engine)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	summary, err := runner.Run(ctx, scope, time.Now(), *dryRun)
	if err != nil {
		log.Fatal().Err(err).Str("scope", scope).Msg("Import failed")
	}

	reportPath := cfg.ReportFile
	if *reportFlag != "" {
		reportPath = *reportFlag
	}
	if reportPath != "" {
		rep := report.FromSummary(summary, cfg.AccountNumber, jobID)
		if err := rep.WriteFile(reportPath); err != nil {
			log.Error().Err(err).Str("path", reportPath).Msg("Failed to write run report")
		}
	}

	// Only a fully clean run may advance the cursor: a failed transaction
	// must stay inside the next auto window.
	if store != nil && !*dryRun && summary.ExitCode == importer.CodeOK {
		if err := store.SetLastSync(ctx, cfg.AccountNumber, summary.Window.Until); err != nil {
			log.Error().Err(err).Msg("Failed to advance sync cursor")
		}
	}

	os.Exit(int(summary.ExitCode))
}
