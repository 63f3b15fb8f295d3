package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ripple/ripple/pkg/core"
	"github.com/go-ripple/ripple/pkg/host/imagehost"
	"github.com/go-ripple/ripple/showcase"
)

// SnapshotOptions holds flags for the snapshot command.
type SnapshotOptions struct {
	*RootOptions
	Format  string
	Output  string
	Seconds int
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshot [demo]",
		Short: "Write a snapshot of a demo's committed tree",
		Long: `Snapshot mounts a demo, advances its clock without wall-clock delays,
and writes the final committed tree as an indented text dump or a PNG.

Example:
  ripple snapshot tasks
  ripple snapshot stopwatch --format png -o stopwatch.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return writeSnapshot(opts, name, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "output format: text or png (default from ripple.yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout, or <demo>.png for png)")
	cmd.Flags().IntVar(&opts.Seconds, "seconds", 0, "seconds of clock to simulate before the snapshot")

	return cmd
}

func writeSnapshot(opts *SnapshotOptions, name string, cmd *cobra.Command) error {
	defaults := projectDefaults()
	if name == "" {
		name = defaults.DefaultDemo
	}
	format := opts.Format
	if format == "" {
		format = defaults.Format
	}
	seconds := opts.Seconds
	if seconds <= 0 {
		seconds = defaults.Seconds
	}

	demo, ok := showcase.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown demo %q (see \"ripple list\")", name)
	}

	clock := newStepClock()
	adapter := imagehost.New()
	container := adapter.NewContainer()

	rt, err := core.Render(demo.Build(clock), adapter, container, core.WithScheduler(core.NewScheduler()))
	if err != nil {
		return fmt.Errorf("failed to mount %q: %w", name, err)
	}
	defer rt.Unmount()

	clock.Advance(time.Duration(seconds) * time.Second)
	if err := rt.Scheduler().FlushAll(); err != nil {
		return err
	}

	switch format {
	case "text":
		dump := adapter.String(container)
		if opts.Output == "" {
			fmt.Fprint(cmd.OutOrStdout(), dump)
			return nil
		}
		return os.WriteFile(opts.Output, []byte(dump), 0o644)
	case "png":
		path := opts.Output
		if path == "" {
			path = name + ".png"
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := adapter.EncodePNG(f, container); err != nil {
			return err
		}
		slog.Info("snapshot written", "demo", name, "path", path)
		return nil
	default:
		return fmt.Errorf("invalid format %q: must be text or png", format)
	}
}
