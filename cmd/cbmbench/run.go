package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexandru-savinov/cbmbench/internal/config"
	"github.com/alexandru-savinov/cbmbench/internal/engine"
	"github.com/alexandru-savinov/cbmbench/internal/metrics"
	"github.com/alexandru-savinov/cbmbench/internal/question"
	"github.com/alexandru-savinov/cbmbench/internal/ratelimit"
	"github.com/alexandru-savinov/cbmbench/internal/scheduler"
	"github.com/alexandru-savinov/cbmbench/internal/statusserver"
	"github.com/alexandru-savinov/cbmbench/internal/store"
	"github.com/alexandru-savinov/cbmbench/internal/vendorclient"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var runFlags selectionFlags
var (
	runOutputDir  string
	runStore      string
	runStatusAddr string
	runEvery      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark and persist results",
	RunE:  runRun,
}

func init() {
	addSelectionFlags(runCmd, &runFlags)
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "results/raw", "directory results are written to")
	runCmd.Flags().StringVar(&runStore, "store", "json", "result store backend: \"json\" or \"sqlite://path\"")
	runCmd.Flags().StringVar(&runStatusAddr, "status-addr", "", "if set, serve /healthz and /status on this address while running")
	runCmd.Flags().StringVar(&runEvery, "every", "", "if set, a cron expression to re-run the benchmark on a schedule instead of once")
}

func runRun(cmd *cobra.Command, args []string) error {
	config.LoadEnv()
	fileCfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, &runFlags, fileCfg)
	if !cmd.Flags().Changed("output-dir") && fileCfg.OutputDir != "" {
		runOutputDir = fileCfg.OutputDir
	}
	if !cmd.Flags().Changed("store") && fileCfg.Store != "" {
		runStore = fileCfg.Store
	}
	if !cmd.Flags().Changed("status-addr") && fileCfg.StatusAddr != "" {
		runStatusAddr = fileCfg.StatusAddr
	}
	if !cmd.Flags().Changed("every") && fileCfg.Every != "" {
		runEvery = fileCfg.Every
	}

	metrics.Register()

	var statusSrv *statusserver.Server
	if runStatusAddr != "" {
		statusSrv = statusserver.New(runStatusAddr)
		go func() {
			if err := statusSrv.ListenAndServe(); err != nil {
				log.Printf("[cbmbench] status server stopped: %v", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runOnce := func() error {
		return executeBenchmark(ctx, runFlags, runOutputDir, runStore, fileCfg.RateLimits, statusSrv)
	}

	if runEvery == "" {
		return runOnce()
	}

	sched := scheduler.New()
	if err := sched.Schedule(runEvery, func() {
		if err := runOnce(); err != nil {
			log.Printf("[cbmbench] scheduled run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid --every expression: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Printf("[cbmbench] scheduled run every %q; press Ctrl+C to stop", runEvery)
	<-ctx.Done()
	return nil
}

func executeBenchmark(ctx context.Context, f selectionFlags, outputDir, storeSpec string, rateLimits map[string]int64, statusSrv *statusserver.Server) error {
	variants, err := parseVariants(f.variant)
	if err != nil {
		return err
	}
	temperatures, err := parseTemperatures(f.temperatures)
	if err != nil {
		return err
	}
	if f.dataset == "" {
		return fmt.Errorf("--dataset is required")
	}

	questions, err := question.LoadFile(f.dataset)
	if err != nil {
		return err
	}
	if f.sampleCap > 0 && len(questions) > f.sampleCap {
		questions = questions[:f.sampleCap]
	}

	registry, err := question.LoadRegistry(f.modelsFile)
	if err != nil {
		return err
	}

	available := engine.AvailableVendors(registry, splitCSV(f.vendors), splitCSV(f.models), config.HasKeyFunc())
	if len(available) == 0 {
		return fmt.Errorf("no vendors available (check API keys, --vendors, and --models)")
	}

	tasks := engine.Plan(questions, variants, available, temperatures, f.repetitions)
	log.Printf("[cbmbench] planned %d tasks over %d questions", len(tasks), len(questions))

	resultStore, err := openStore(storeSpec, outputDir)
	if err != nil {
		return err
	}
	defer func() { _ = resultStore.Close() }()

	client := vendorclient.New(resty.New())
	limiter := ratelimit.New(rateLimits)
	executor := engine.New(client, limiter)

	runID := uuid.NewString()
	startedAt := time.Now()

	results, summary := executor.Run(ctx, tasks, func(completed, total int) {
		log.Printf("[cbmbench] progress: %d/%d", completed, total)
		if statusSrv != nil {
			statusSrv.Update(statusserver.RunStatus{
				RunID:     runID,
				Completed: completed,
				Total:     total,
				StartedAt: startedAt,
				Done:      completed == total,
			})
		}
	})

	log.Printf("[cbmbench] tasks_completed=%d tasks_failed=%d (planned %d)", summary.Completed, summary.Failed, len(tasks))

	if statusSrv != nil {
		statusSrv.Update(statusserver.RunStatus{
			RunID:     runID,
			Completed: summary.Completed,
			Failed:    summary.Failed,
			Total:     len(tasks),
			StartedAt: startedAt,
			Done:      true,
		})
	}

	return resultStore.Save(runID, results)
}

func openStore(spec, outputDir string) (store.ResultStore, error) {
	const sqlitePrefix = "sqlite://"
	if len(spec) > len(sqlitePrefix) && spec[:len(sqlitePrefix)] == sqlitePrefix {
		return store.NewSQLStore(spec[len(sqlitePrefix):])
	}
	return store.NewJSONStore(outputDir)
}
