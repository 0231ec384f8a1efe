package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/lqrplan/internal/batch"
	"github.com/san-kum/lqrplan/internal/config"
	"github.com/san-kum/lqrplan/internal/control"
	"github.com/san-kum/lqrplan/internal/dynamo"
	"github.com/san-kum/lqrplan/internal/export"
	"github.com/san-kum/lqrplan/internal/lqr"
	"github.com/san-kum/lqrplan/internal/metrics"
	"github.com/san-kum/lqrplan/internal/storage"
	"github.com/san-kum/lqrplan/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	preset   string
	horizon  int
	save     bool
	jsonOut  bool
	statesIn string
	workers  int

	xAxis   int
	yAxis   int
	outFile string

	step int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lqrplan",
		Short:        "finite-horizon LQR planner",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lqrplan", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	solveCmd := &cobra.Command{
		Use:   "solve [problem.yaml]",
		Short: "solve a problem file or preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveProblem,
	}
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset problem")
	solveCmd.Flags().IntVar(&horizon, "horizon", 0, "override the time horizon")
	solveCmd.Flags().BoolVar(&save, "save", false, "store the plan in the data directory")
	solveCmd.Flags().BoolVar(&jsonOut, "json", false, "print actions as JSON instead of a table")

	batchCmd := &cobra.Command{
		Use:   "batch [problem.yaml]",
		Short: "solve one problem from many initial states",
		Args:  cobra.MaximumNArgs(1),
		RunE:  batchSolve,
	}
	batchCmd.Flags().StringVar(&preset, "preset", "", "use preset problem")
	batchCmd.Flags().IntVar(&horizon, "horizon", 0, "override the time horizon")
	batchCmd.Flags().StringVar(&statesIn, "states", "", "yaml file with a 'states' list")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")
	_ = batchCmd.MarkFlagRequired("states")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored plans",
		Args:  cobra.NoArgs,
		RunE:  listPlans,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [plan_id]",
		Short: "plot a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE:  plotPlan,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [plan_id]",
		Short: "export a stored plan to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir, logger).ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [plan_id]",
		Short: "export the phase portrait of a stored plan to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	exportSVGCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	actionCmd := &cobra.Command{
		Use:   "action [plan_id]",
		Short: "print the planned action for one step (zeros past the horizon)",
		Args:  cobra.ExactArgs(1),
		RunE:  planAction,
	}
	actionCmd.Flags().IntVar(&step, "step", 0, "control step")

	rootCmd.AddCommand(solveCmd, batchCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, actionCmd)
	return rootCmd
}

// loadProblem resolves the problem from a file argument or --preset.
func loadProblem(args []string) (*config.Problem, error) {
	switch {
	case preset != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a problem file or --preset, not both")
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, nil
	case len(args) == 1:
		return config.Load(args[0])
	default:
		return nil, fmt.Errorf("a problem file or --preset is required")
	}
}

// buildProblem applies an explicit --horizon, even an invalid one, so the
// solver reports it.
func buildProblem(cmd *cobra.Command, cfg *config.Problem) (lqr.Problem, error) {
	if cmd.Flags().Changed("horizon") {
		cfg.Horizon = horizon
	}
	p, err := cfg.Build()
	if err != nil {
		return lqr.Problem{}, err
	}
	if nonZero(p.Target) {
		logger.Warn("target state is ignored; the regulator drives the state to the origin", "target", p.Target)
	}
	return p, nil
}

func solveProblem(cmd *cobra.Command, args []string) error {
	cfg, err := loadProblem(args)
	if err != nil {
		return err
	}
	p, err := buildProblem(cmd, cfg)
	if err != nil {
		return err
	}

	logger.Debug("solving", "name", cfg.Name, "state_dim", len(p.State), "horizon", p.Horizon)
	plan, err := lqr.Solve(p)
	if err != nil {
		return err
	}

	tr := plan.Trajectory()
	vals, err := metrics.Evaluate(tr, metrics.Default(p.Q, p.R, p.FinalCost(), cfg.Bound)...)
	if err != nil {
		return err
	}
	logger.Info("solved", "name", cfg.Name, "cost", vals["cost"], "terminal_norm", vals["terminal_norm"])

	var planID string
	if save {
		st := storage.New(dataDir, logger)
		if err := st.Init(); err != nil {
			return err
		}
		if planID, err = st.Save(cfg, tr, vals); err != nil {
			return fmt.Errorf("save plan: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return writeActionsJSON(out, plan.Actions())
	}
	fmt.Fprintln(out, viz.RenderPlan(viz.PlanReport{
		Name:    cfg.Name,
		ID:      planID,
		Actions: plan.Actions(),
		Metrics: vals,
	}))
	if planID != "" {
		fmt.Fprintf(out, "saved: %s\n", planID)
	}
	return nil
}

func batchSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadProblem(args)
	if err != nil {
		return err
	}
	p, err := buildProblem(cmd, cfg)
	if err != nil {
		return err
	}
	states, err := config.LoadStates(statesIn)
	if err != nil {
		return err
	}

	logger.Debug("batch solving", "name", cfg.Name, "states", len(states), "workers", workers)
	results, err := batch.Solve(cmd.Context(), p, states, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tSTATE\tU0\tCOST")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.6g\n",
			r.Index, formatVec(states[r.Index]), formatVec(r.Plan.Actions()[0]), r.Plan.Cost())
	}
	return w.Flush()
}

func listPlans(cmd *cobra.Command, args []string) error {
	plans, err := storage.New(dataDir, logger).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(plans) == 0 {
		fmt.Fprintln(out, "no plans found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIMESTAMP\tHORIZON\tCOST")
	for _, p := range plans {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.6g\n",
			p.ID, p.Name, p.Timestamp.Format("2006-01-02 15:04:05"), p.Horizon, p.Metrics["cost"])
	}
	return w.Flush()
}

func plotPlan(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadPlan(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "plan: %s\n", meta.ID)
	fmt.Fprintf(out, "name: %s\n", meta.Name)
	fmt.Fprintf(out, "horizon: %d\n\n", meta.Horizon)

	states := make([][]float64, len(tr.States))
	for i, x := range tr.States {
		states[i] = x
	}
	controls := make([][]float64, len(tr.Controls))
	for i, u := range tr.Controls {
		controls[i] = u
	}

	for _, g := range viz.PlotChannels(controls, "u") {
		fmt.Fprintln(out, g)
		fmt.Fprintln(out)
	}
	for _, g := range viz.PlotChannels(states, "x") {
		fmt.Fprintln(out, g)
		fmt.Fprintln(out)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	tr, err := storage.New(dataDir, logger).LoadPlan(args[0])
	if err != nil {
		return err
	}
	svg, err := export.PhaseSVG(tr, xAxis, yAxis, 800, 600)
	if err != nil {
		return err
	}

	if outFile == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg written", "path", outFile)
	return nil
}

func planAction(cmd *cobra.Command, args []string) error {
	tr, err := storage.New(dataDir, logger).LoadPlan(args[0])
	if err != nil {
		return err
	}

	actions := make([][]float64, len(tr.Controls))
	for i, u := range tr.Controls {
		actions[i] = u
	}
	sched := control.NewSchedule(actions)
	if step >= sched.Len() {
		logger.Warn("step past the planned horizon", "step", step, "horizon", sched.Len())
	}

	var x dynamo.State
	if step >= 0 && step < len(tr.States) {
		x = tr.States[step]
	}
	return writeActionsJSON(cmd.OutOrStdout(), [][]float64{sched.Compute(x, float64(step))})
}

func nonZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return true
		}
	}
	return false
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4g", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func writeActionsJSON(w io.Writer, actions [][]float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(actions)
}
