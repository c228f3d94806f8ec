package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"holystreak/internal/bootstrap"
	"holystreak/internal/modules/streak/domain"
	streakdto "holystreak/internal/modules/streak/dto"
	"holystreak/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "holystreak",
		Short:         "Count the days since your streak started",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $HOLYSTREAK_DATA_DIR or $XDG_DATA_HOME/holystreak)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show the live streak screen",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

type statusDocument struct {
	Started   bool   `yaml:"started"`
	Degraded  bool   `yaml:"degraded,omitempty"`
	StartedAt string `yaml:"started_at,omitempty"`
	StartMS   int64  `yaml:"start_ms,omitempty"`
	Days      int64  `yaml:"days"`
	Hours     int    `yaml:"hours"`
	Minutes   int    `yaml:"minutes"`
	Seconds   int    `yaml:"seconds"`
}

func newStatusCmd(dataDir *string) *cobra.Command {
	var format string
	status := &cobra.Command{
		Use:   "status",
		Short: "Print the current streak once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("--format must be text or yaml, got %q", format)
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StreakCLI.Status(context.Background())
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), format, out)
		},
	}
	status.Flags().StringVar(&format, "format", "text", "output format: text|yaml")
	return status
}

func writeStatus(w io.Writer, format string, out streakdto.StatusOutput) error {
	if format == "yaml" {
		doc := statusDocument{
			Started:  out.State.Started,
			Degraded: out.State.Degraded,
			Days:     out.Duration.Days,
			Hours:    out.Duration.Hours,
			Minutes:  out.Duration.Minutes,
			Seconds:  out.Duration.Seconds,
		}
		if out.State.Started {
			doc.StartMS = out.State.StartMillis
			doc.StartedAt = out.State.StartedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	}

	switch {
	case out.State.Degraded:
		_, _ = fmt.Fprintln(w, "stored streak unreadable, counting from zero")
	case out.State.Started:
		_, _ = fmt.Fprintf(w, "streak since %s\n", out.State.StartedAt.Format("2006-01-02 15:04:05"))
	default:
		_, _ = fmt.Fprintln(w, "no streak started")
	}
	_, _ = fmt.Fprintf(w, "%d days\n%d hours\n%d minutes\n%d seconds\n", out.Duration.Days, out.Duration.Hours, out.Duration.Minutes, out.Duration.Seconds)
	return nil
}

func newResetCmd(dataDir *string) *cobra.Command {
	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "End the current streak and start a new one now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gate := domain.Gate{}.Request()
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure want to end it? [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					gate = gate.Cancel()
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "streak kept")
					return nil
				}
			}
			gate, err := gate.Confirm()
			if err != nil {
				return err
			}

			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StreakCLI.ResetCurrent(context.Background())
			gate = gate.Resolve(err)
			if err != nil {
				return fmt.Errorf("reset streak (state %s, nothing changed): %w", gate.Phase(), err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak ended after %d days %d hours %d minutes %d seconds\nnew streak started at %s\n",
				out.Ended.Days, out.Ended.Hours, out.Ended.Minutes, out.Ended.Seconds,
				out.State.StartedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return reset
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	_, _ = fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
