package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting-flow/internal/httpapi"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/watcher"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process recordings dropped into the input folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			a, err := ctx.newApp(runCtx)
			if err != nil {
				return err
			}
			defer a.Close()

			handler := func(hctx context.Context, path string) error {
				_, err := a.proc.Process(hctx, path)
				return err
			}
			w, err := watcher.New(a.cfg.Paths.Input, handler, a.log, a.cfg.Performance.MaxConcurrent)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()

			a.log.Info(runCtx, "========================================")
			a.log.Info(runCtx, "Meeting pipeline is ready!")
			a.log.Info(runCtx, "Monitoring: %s", a.cfg.Paths.Input)
			a.log.Info(runCtx, "Output: %s", a.cfg.Paths.Output)
			a.log.Info(runCtx, "Providers: %v", a.chain.Providers())
			a.log.Info(runCtx, "Sync enabled: %t", a.cfg.SyncEnabled())
			a.log.Info(runCtx, "Press Ctrl+C to stop")
			a.log.Info(runCtx, "========================================")

			err = w.Start(runCtx)

			a.log.Info(context.Background(), "Waiting for background extraction to finish...")
			a.proc.Wait()
			a.log.Info(context.Background(), "Meeting pipeline stopped")

			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			a, err := ctx.newApp(runCtx)
			if err != nil {
				return err
			}
			defer a.Close()

			if host != "" {
				a.cfg.Server.Host = host
			}
			if port != 0 {
				a.cfg.Server.Port = port
			}

			srv, err := httpapi.NewServer(a.cfg, a.proc, a.exec, a.metrics.Handler(), a.log)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case <-runCtx.Done():
				a.log.Info(context.Background(), "Shutdown signal received")
			case err := <-errCh:
				return fmt.Errorf("http server: %w", err)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")
	return cmd
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process <media>",
		Short: "Transcribe a recording, extract tasks and sync them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.proc.Process(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.proc.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "Meeting %s: %d segments (cached=%t)\nArtifacts in %s\n",
				res.Meeting, res.Segments, res.Cached, filepath.Dir(res.TranscriptPath))
			return nil
		},
	}
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <media>",
		Short: "Only transcribe a recording into transcript.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.proc.Transcribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d segments, cached=%t)\n", res.TranscriptPath, res.Segments, res.Cached)
			return nil
		},
	}
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <transcript.json>",
		Short: "Extract tasks from a transcript artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.proc.ExtractTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Task", "Assignee", "Priority", "Deadline", "Confidence"},
				taskRows(rep.Tasks),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			provider := rep.Provider
			if provider == "" {
				provider = "none"
			}
			fmt.Fprintf(out, "%d tasks written to %s (provider: %s)\n", rep.TaskCount, rep.TasksPath, provider)
			for _, e := range rep.Errors {
				fmt.Fprintf(out, "  %s: %s\n", e.Provider, e.Message)
				if e.Hint != "" {
					fmt.Fprintf(out, "    hint: %s\n", e.Hint)
				}
			}
			return nil
		},
	}
}

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <tasks.json>",
		Short: "Write a task list to the configured destination databases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireSync(); err != nil {
				return err
			}

			a, err := ctx.newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.proc.SyncTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Metric", "Count"},
				statsRows(rep.Stats),
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func taskRows(tasks []models.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(t.Text, 70),
			t.Assignee,
			string(t.Priority),
			t.Deadline,
			strconv.FormatFloat(t.Confidence, 'f', 2, 64),
		})
	}
	return rows
}

func statsRows(s models.SyncStats) [][]string {
	rows := [][]string{
		{"Total", strconv.Itoa(s.Total)},
		{"Synced", strconv.Itoa(s.Synced)},
		{"Skipped (duplicates)", strconv.Itoa(s.Skipped)},
		{"Failed", strconv.Itoa(s.Failed)},
		{"Cross-destination", strconv.Itoa(s.CrossDestination)},
	}
	for _, name := range sortedKeys(s.ByDestination) {
		rows = append(rows, []string{"  " + name, strconv.Itoa(s.ByDestination[name])})
	}
	return rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
