package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"focusflow/internal/bootstrap"
	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/timefmt"
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
		Use:           "focusflow",
		Short:         "Personal focus session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.focusflow)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newTodayCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
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
		Short: "Run the focusflow terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Focus session commands"}

	var subject, tasks string
	var duration, breakMin int
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a session and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			active, err := app.SessionCLI.Create(context.Background(), args[0], subject, duration, breakMin, tasks)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) %d min\n",
				active.Session.Title, active.Session.ID, active.Session.DurationMinutes)
			return nil
		},
	}
	create.Flags().StringVar(&subject, "subject", "", "subject label (optional)")
	create.Flags().IntVar(&duration, "duration", 25, "focus duration in minutes")
	create.Flags().IntVar(&breakMin, "break", 5, "break duration in minutes")
	create.Flags().StringVar(&tasks, "tasks", "", "task list, one per line")

	session.AddCommand(create)

	session.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			active, err := app.SessionCLI.GetActive(context.Background())
			if err != nil {
				return err
			}
			printActive(cmd, active)
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start or resume the countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			active, err := app.SessionCLI.StartTimer(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s remaining\n",
				active.TimerState, timefmt.Clock(active.RemainingSeconds))
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			active, err := app.SessionCLI.PauseTimer(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s remaining\n",
				active.TimerState, timefmt.Clock(active.RemainingSeconds))
			return nil
		},
	})

	session.AddCommand(newRunCmd(dataDir))

	session.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the active session early",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			active, err := app.SessionCLI.EndSession(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ended %s: %d min focused\n",
				active.Session.Title, active.Session.FocusedMinutes)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "add a reflection with: focusflow session reflect")
			return nil
		},
	})

	distract := &cobra.Command{
		Use:   "distract <type>",
		Short: "Log a distraction on the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			active, err := app.SessionCLI.AddDistraction(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s (%d total)\n",
				args[0], len(active.Session.Distractions))
			return nil
		},
	}
	session.AddCommand(distract)

	var rating int
	var good, improve string
	reflect := &cobra.Command{
		Use:   "reflect",
		Short: "Attach a reflection to the just-ended session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rating < 1 || rating > 5 {
				return fmt.Errorf("--rating must be between 1 and 5")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.AttachReflection(context.Background(), rating, good, improve)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reflection saved for %s (rating %d)\n", out.Title, out.Rating)
			return nil
		},
	}
	reflect.Flags().IntVar(&rating, "rating", 0, "focus rating from 1 to 5")
	reflect.Flags().StringVar(&good, "good", "", "what went well")
	reflect.Flags().StringVar(&improve, "improve", "", "what to improve")
	session.AddCommand(reflect)

	session.AddCommand(&cobra.Command{
		Use:   "dismiss",
		Short: "Close the active session without a reflection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.DismissReflection(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "dismissed")
			return nil
		},
	})

	return session
}

// newRunCmd drives the countdown in the foreground, one tick per second.
// Ctrl-C pauses the timer and exits; the stored state resumes later.
func newRunCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the countdown in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			active, err := app.SessionCLI.StartTimer(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s  %s\n", active.Session.Title, timefmt.Clock(active.RemainingSeconds))

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					paused, err := app.SessionCLI.PauseTimer(context.Background())
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "\npaused at %s\n", timefmt.Clock(paused.RemainingSeconds))
					return nil
				case <-ticker.C:
					tick, err := app.SessionCLI.Tick(ctx)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "\r%s ", timefmt.Clock(tick.RemainingSeconds))
					if tick.Finished {
						_, _ = fmt.Fprintln(out, "\ntime is up, session completed")
						_, _ = fmt.Fprintln(out, "add a reflection with: focusflow session reflect")
						return nil
					}
				}
			}
		},
	}
}

func newTodayCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List sessions created today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			rows, err := app.SessionCLI.ListToday(context.Background())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions today")
				return nil
			}
			printSessions(cmd, rows)
			return nil
		},
	}
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List all sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			rows, err := app.SessionCLI.ListHistory(context.Background())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			printSessions(cmd, rows)
			return nil
		},
	}
}

func newStatsCmd(dataDir *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Focus statistics"}

	stats.AddCommand(&cobra.Command{
		Use:   "subjects",
		Short: "Focused minutes per subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			chart, err := app.StatsCLI.SubjectTotals(context.Background())
			if err != nil {
				return err
			}
			if len(chart.Labels) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			data := chart.Datasets[0].Data
			for i, label := range chart.Labels {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", label, data[i])
			}
			return nil
		},
	})

	var days int
	daily := &cobra.Command{
		Use:   "daily",
		Short: "Focused minutes per day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			rows, err := app.StatsCLI.DailyFocus(context.Background(), days)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no focus recorded")
				return nil
			}
			for _, row := range rows {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d min\t%d session(s)\n",
					row.DateKey, row.FocusedMinutes, row.Sessions)
			}
			return nil
		},
	}
	daily.Flags().IntVar(&days, "days", 7, "number of days to include")
	stats.AddCommand(daily)

	return stats
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the stats database from the session log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d session(s)\n", out.Indexed)
			return nil
		},
	}
}

func printActive(cmd *cobra.Command, active sessiondto.ActiveOutput) {
	out := cmd.OutOrStdout()
	subject := active.Session.Subject
	if subject == "" {
		subject = "no subject"
	}
	_, _ = fmt.Fprintf(out, "%s (%s)\n", active.Session.Title, subject)
	_, _ = fmt.Fprintf(out, "%s  %s remaining\n", active.TimerState, timefmt.Clock(active.RemainingSeconds))
	if len(active.Session.Tasks) > 0 {
		_, _ = fmt.Fprintln(out, "tasks: "+strings.Join(active.Session.Tasks, ", "))
	}
	for _, d := range active.Session.Distractions {
		_, _ = fmt.Fprintf(out, "distraction: %s @ %s\n", d.Type, timefmt.DayTime(d.Timestamp))
	}
	if active.ReflectionPending {
		_, _ = fmt.Fprintln(out, "reflection pending")
	}
}

func printSessions(cmd *cobra.Command, rows []sessiondto.SessionOutput) {
	out := cmd.OutOrStdout()
	for _, row := range rows {
		subject := row.Subject
		if subject == "" {
			subject = "no subject"
		}
		status := "open"
		if row.Completed {
			status = "completed"
		}
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%d/%d min\t%d distraction(s)\t%s\n",
			timefmt.DayDate(row.CreatedAt), row.Title, subject,
			row.FocusedMinutes, row.DurationMinutes, len(row.Distractions), status)
	}
}
