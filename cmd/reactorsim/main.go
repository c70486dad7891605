package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/console"
	"github.com/san-kum/reactorsim/internal/export"
	"github.com/san-kum/reactorsim/internal/session"
	"github.com/san-kum/reactorsim/internal/solver"
	"github.com/san-kum/reactorsim/internal/storage"
	"github.com/san-kum/reactorsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataPath   string
	backend    string
	configFile string
	chartOut   string
	ascii      bool
	theme      string
	// run options
	slot   int
	preset string
)

// main registers the commands and flags and runs the interactive session
// when no subcommand is given. It exits with status 1 on any error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "reactorsim",
		Short:         "transient response of a continuously stirred tank reactor",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runSession,
	}

	rootCmd.PersistentFlags().StringVar(&dataPath, "data", config.DefaultDataPath, "record image path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", config.DefaultBackend, "record store backend (file|sqlite)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&chartOut, "chart", config.DefaultChartOutput, "chart image path (.png or .svg), empty to disable")
	rootCmd.PersistentFlags().BoolVar(&ascii, "ascii", true, "draw the chart in the terminal")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "console color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "interactive session: enter or reuse a data set, plot it, save it",
		Args:  cobra.NoArgs,
		RunE:  runSession,
	}
	runCmd.Flags().IntVar(&slot, "slot", 0, "use stored data set N (1-5) without prompting")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a named preset without prompting")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list the stored data sets",
		Args:  cobra.NoArgs,
		RunE:  listSlots,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [slot]",
		Short: "solve and plot a stored data set",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSlot,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "pick a stored data set interactively and plot it",
		Args:  cobra.NoArgs,
		RunE:  browseSlots,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [slot]",
		Short: "euler error against the analytical solution",
		Args:  cobra.ExactArgs(1),
		RunE:  compareSlot,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [slot]",
		Short: "export solution data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [slot]",
		Short: "export solution data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available parameter presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Println(viz.Status.Render("wrote " + args[0]))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, browseCmd, compareCmd, exportCSVCmd, exportJSONCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Fail.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// settings merges defaults, the config file and explicitly set flags.
func settings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = dataPath
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("chart") {
		cfg.Chart.Output = chartOut
	}
	if flags.Changed("ascii") {
		cfg.Chart.ASCII = ascii
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	viz.SetTheme(cfg.Theme)
	return cfg, nil
}

func openStore(cfg *config.Config) (*storage.RecordStore, error) {
	b, err := storage.OpenBackend(cfg.Backend, cfg.StorePath())
	if err != nil {
		return nil, err
	}
	st, err := storage.Open(b)
	if err != nil {
		b.Close()
		return nil, err
	}
	if st.Created() {
		fmt.Println(viz.Warn.Render(fmt.Sprintf("File %s does not exist. Please input new data", cfg.StorePath())))
	}
	return st, nil
}

func renderers(cfg *config.Config) viz.Renderers {
	var rs viz.Renderers
	if cfg.Chart.ASCII {
		rs = append(rs, viz.TerminalRenderer{Out: os.Stdout, Width: cfg.Chart.ASCIIWidth, Height: cfg.Chart.ASCIIHeight})
	}
	if cfg.Chart.Output != "" {
		rs = append(rs, viz.ImageRenderer{Path: cfg.Chart.Output, Width: cfg.Chart.Width, Height: cfg.Chart.Height})
	}
	return rs
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	if preset != "" && slot != 0 {
		return fmt.Errorf("%w: use --preset or --slot, not both", session.ErrConflictingSource)
	}

	var opts []session.Option
	if preset != "" {
		p, ok := cfg.Preset(preset)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		opts = append(opts, session.WithPreset(preset, p))
	}
	if slot != 0 {
		if err := storage.CheckSlot(slot); err != nil {
			return err
		}
		opts = append(opts, session.WithSlot(slot))
	}
	opts = append(opts, session.WithOutput(os.Stdout))

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in := console.NewPrompter(os.Stdin, os.Stdout)
	rep, err := session.New(st, in, renderers(cfg), opts...).Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Chart.Output != "" {
		fmt.Println(viz.Subtle.Render("chart written to " + cfg.Chart.Output))
	}
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("source: %s  steps: %d  max euler error: %.6g", rep.Source, rep.Params.StepCount(), rep.Errors.MaxAbs)))
	return nil
}

func listSlots(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Println(viz.SlotTable(st.Slots()))
	return nil
}

// solveSlot loads the data set in the slot named by arg and solves it.
func solveSlot(cfg *config.Config, arg string) (*solver.Solution, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid slot %q: %w", arg, err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	p, err := st.Select(n)
	if err != nil {
		return nil, err
	}
	return solver.Solve(p)
}

func plotSolution(cfg *config.Config, sol *solver.Solution) error {
	b, err := analysis.AxisBounds(sol)
	if err != nil {
		return err
	}
	if err := renderers(cfg).Render(viz.TransientChart(sol, b)); err != nil {
		return err
	}
	fmt.Println(viz.ParamsTable(sol.Params))
	if cfg.Chart.Output != "" {
		fmt.Println(viz.Subtle.Render("chart written to " + cfg.Chart.Output))
	}
	return nil
}

func plotSlot(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	sol, err := solveSlot(cfg, args[0])
	if err != nil {
		return err
	}
	return plotSolution(cfg, sol)
}

func browseSlots(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	slots := st.Slots()
	// the picker and the plot reopen the store, so release it first
	if err := st.Close(); err != nil {
		return err
	}

	if !slots.Any() {
		fmt.Println(viz.Warn.Render("no stored data sets"))
		return nil
	}

	n, err := viz.RunSlotPicker(slots)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	sol, err := solveSlot(cfg, strconv.Itoa(n))
	if err != nil {
		return err
	}
	return plotSolution(cfg, sol)
}

func compareSlot(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	sol, err := solveSlot(cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("euler vs analytical, data set %s", args[0])))
	fmt.Println(viz.ErrorTable(analysis.Compare(sol)))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	sol, err := solveSlot(cfg, args[0])
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, sol)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	sol, err := solveSlot(cfg, args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, sol)
}

func listPresets(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("built-in presets"))
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Printf("  %-10s q=%g cin=%g c0=%g v=%g tf=%g dt=%g\n",
			name, p.FlowRate, p.InletConcentration, p.InitialConcentration, p.Volume, p.FinalTime, p.TimeStep)
	}
	if len(cfg.Presets) > 0 {
		fmt.Println(viz.Title.Render("config presets"))
		for _, name := range cfg.PresetNames() {
			p := cfg.Presets[name]
			fmt.Printf("  %-10s q=%g cin=%g c0=%g v=%g tf=%g dt=%g\n",
				name, p.FlowRate, p.InletConcentration, p.InitialConcentration, p.Volume, p.FinalTime, p.TimeStep)
		}
	}
	return nil
}
