package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/arcana/am"
	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/logger"
	"github.com/teranos/arcana/metrics"
	"github.com/teranos/arcana/report"
	"github.com/teranos/arcana/sym"
	"github.com/teranos/arcana/template"
)

// ReportCmd builds the pages of a scenario
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: sym.Short("report"),
	Long: sym.Report + ` report — build the pages of a scenario

Scenarios:
  adult   fullstar, five triangles, predict and Pythagorean pages
  child   personality and money triangles, Pythagorean page
  couple  both partners' adult pages plus the couple page

Every page is written to the output directory as <name>_<page>.<format>.
With --watch the report is rebuilt whenever a page layout or the
configuration file changes, until interrupted.

Examples:
  arcana report --scenario adult -c "Anna,15.05.1990,F"
  arcana report --scenario couple -c "John,7.12.1963,F" -c "Jul,23.7.1982,M"
  arcana report --scenario child --demo --format yaml --out /tmp/pages
  arcana report --scenario adult --demo --watch`,
	RunE: runReport,
}

func init() {
	addClientFlags(ReportCmd, `Client as "name,dd.mm.yyyy,gender" (twice for couple)`)
	ReportCmd.Flags().StringP("scenario", "s", string(report.ScenarioAdult), "Scenario: adult, child, couple")
	ReportCmd.Flags().StringP("out", "o", "", "Output directory (default: output.dir)")
	ReportCmd.Flags().String("format", "", "Page format: json, yaml (default: output.format)")
	ReportCmd.Flags().Bool("watch", false, "Rebuild on layout or configuration changes")
}

// reportRun is one configured report invocation.
type reportRun struct {
	req     report.Request
	dir     string
	format  string
	metrics *metrics.Metrics
	builder atomic.Pointer[report.Builder]

	mu  sync.Mutex
	cfg *am.Config
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("scenario")
	scenario, err := report.ParseScenario(name)
	if err != nil {
		return err
	}
	clients, err := readClients(cmd, scenario, scenario.AgeClass(), scenario.Clients())
	if err != nil {
		return err
	}

	run := &reportRun{
		req:     report.Request{Scenario: scenario, Clients: clients},
		dir:     cfg.Output.Dir,
		format:  display.FormatFor(cmd, cfg.GetOutputFormat()),
		metrics: metrics.Default(),
		cfg:     cfg,
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		run.dir = out
	}
	if run.format == display.FormatTable {
		run.format = am.FormatJSON
	}

	cache, err := template.NewCache(cfg.GetCacheSize(), run.metrics)
	if err != nil {
		return err
	}
	b, err := report.NewBuilder(cfg, cache, run.metrics)
	if err != nil {
		return err
	}
	run.builder.Store(b)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := run.once(ctx, cmd); err != nil {
		return err
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return run.watch(ctx, cmd)
	}
	return nil
}

// once builds and writes the report, then dumps metrics when configured.
func (r *reportRun) once(ctx context.Context, cmd *cobra.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep, err := r.builder.Load().Build(ctx, r.req)
	if err != nil {
		return err
	}
	paths, err := rep.Write(r.dir, r.format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s report %s: %d pages\n", sym.OK, rep.Scenario, rep.ID, len(paths))
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}

	if textfile := r.cfg.Metrics.Textfile; textfile != "" {
		if err := r.metrics.WriteTextfile(textfile); err != nil {
			logger.Warnw("Failed to write metrics", logger.FieldPath, textfile, logger.FieldError, err)
		}
	}
	return nil
}

// watch rebuilds on layout and config changes until interrupted.
func (r *reportRun) watch(ctx context.Context, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logger.ComponentLogger("report.watch")
	dir := r.cfg.Templates.Dir

	rebuild := func(reason string) {
		if err := r.once(ctx, cmd); err != nil {
			log.Errorw("Rebuild failed", "reason", reason, logger.FieldError, err)
		}
	}

	if path := configPath(cmd); path != "" {
		var opts []am.WatcherOption
		if explicit, _ := cmd.Flags().GetString("config"); explicit != "" {
			opts = append(opts, am.WithLoader(func() (*am.Config, error) { return am.LoadFromFile(explicit) }))
		}
		cw, err := am.NewConfigWatcher(path, opts...)
		if err != nil {
			return err
		}
		cw.OnReload(func(cfg *am.Config) error {
			b, err := report.NewBuilder(cfg, r.builder.Load().Cache(), r.metrics)
			if err != nil {
				return err
			}
			r.mu.Lock()
			r.cfg = cfg
			r.mu.Unlock()
			r.builder.Store(b)
			rebuild("config")
			return nil
		})
		am.SetGlobalWatcher(cw)
		cw.Start()
		defer cw.Stop()
		log.Infow("Watching configuration", logger.FieldPath, path)
	}

	log.Infow("Watching page layouts", logger.FieldPath, dir)
	return r.builder.Load().Cache().Watch(ctx, []string{dir}, func(paths []string) {
		log.Infow("Layouts changed", logger.FieldCount, len(paths))
		rebuild("layout")
	})
}
