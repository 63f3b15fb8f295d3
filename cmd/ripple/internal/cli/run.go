package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ripple/ripple/pkg/core"
	"github.com/go-ripple/ripple/pkg/host"
	"github.com/go-ripple/ripple/showcase"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Seconds int
	Delay   time.Duration
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "Run a showcase demo on the in-memory host",
		Long: `Run mounts a showcase demo on the in-memory host, advances its clock
one second at a time, and prints the committed tree after every flush.

Example:
  ripple run stopwatch
  ripple run counter --seconds 5 --delay 0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runDemo(opts, name, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Seconds, "seconds", 0, "seconds of clock to simulate (default from ripple.yaml)")
	cmd.Flags().DurationVar(&opts.Delay, "delay", time.Second, "wall-clock pause between simulated seconds")

	return cmd
}

func runDemo(opts *RunOptions, name string, cmd *cobra.Command) error {
	defaults := projectDefaults()
	if name == "" {
		name = defaults.DefaultDemo
	}
	seconds := opts.Seconds
	if seconds <= 0 {
		seconds = defaults.Seconds
	}

	demo, ok := showcase.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown demo %q (see \"ripple list\")", name)
	}

	slog.Debug("mounting demo", "demo", demo.Name, "seconds", seconds)

	clock := newStepClock()
	adapter := host.NewMemoryAdapter()
	container := adapter.NewContainer()

	rt, err := core.Render(demo.Build(clock), adapter, container, core.WithScheduler(core.NewScheduler()))
	if err != nil {
		return fmt.Errorf("failed to mount %q: %w", name, err)
	}
	defer rt.Unmount()

	out := cmd.OutOrStdout()
	fmt.Fprint(out, adapter.String(container))

	for i := 0; i < seconds; i++ {
		time.Sleep(opts.Delay)
		clock.Advance(time.Second)
		if err := rt.Scheduler().FlushAll(); err != nil {
			return err
		}
		fmt.Fprintln(out, "---")
		fmt.Fprint(out, adapter.String(container))
	}
	return nil
}
