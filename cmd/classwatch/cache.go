package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/storage"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local cache",
		Long: `The cache remembers the last loaded week, its fingerprint and when it was
loaded, so the next start goes straight to the right week.`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cached week",
		RunE:  runCacheShow,
	}
	show.Flags().Bool("json", false, "print the record as JSON")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the cached week (history is kept)",
		RunE:  runCacheClear,
	}

	cmd.AddCommand(show, clearCmd)
	return cmd
}

// withStore opens the cache database without needing a schedule source.
func withStore(cmd *cobra.Command, fn func(store *storage.SQLiteStorage) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close cache database", "error", closeErr)
		}
	}()
	return fn(store)
}

func runCacheShow(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	return withStore(cmd, func(store *storage.SQLiteStorage) error {
		rec, err := store.GetCacheRecord(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}
		writeLine(cmd.OutOrStdout(), renderCacheRecord(rec, time.Now()))
		return nil
	})
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(store *storage.SQLiteStorage) error {
		if err := store.ClearCache(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		writeLine(cmd.OutOrStdout(), cli.FormatSuccess("Cache cleared"))
		return nil
	})
}

func renderCacheRecord(rec model.CacheRecord, now time.Time) string {
	if !rec.HasWeek() {
		return cli.FormatInfo("Nothing cached yet")
	}

	lastLoad := "never"
	if !rec.LastLoadTime.IsZero() {
		lastLoad = fmt.Sprintf("%s (%s)", rec.LastLoadTime.Format("2006-01-02 15:04"), formatRelativeTime(rec.LastLoadTime, now))
	}

	content := fmt.Sprintf("Week:        %d\nFingerprint: %s\nLast load:   %s",
		rec.CachedWeek, rec.Fingerprint, lastLoad)
	return cli.RenderBox("Cache", content)
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent week loads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withStore(cmd, func(store *storage.SQLiteStorage) error {
				loads, err := store.ListLoads(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("failed to read load history: %w", err)
				}
				return renderHistory(cmd.OutOrStdout(), loads, time.Now())
			})
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	return cmd
}

func renderHistory(out io.Writer, loads []model.LoadRecord, now time.Time) error {
	if len(loads) == 0 {
		writeLine(out, cli.FormatInfo("No loads recorded yet"))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	if _, err := fmt.Fprintln(w, strings.Join([]string{
		headerStyle.Render("WHEN"),
		headerStyle.Render("WEEK"),
		headerStyle.Render("COURSES"),
		headerStyle.Render("REASON"),
		headerStyle.Render("FINGERPRINT"),
	}, "\t")); err != nil {
		return err
	}

	for _, l := range loads {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			formatRelativeTime(l.LoadedAt, now),
			l.Week,
			l.Courses,
			l.Reason,
			cli.SubtleStyle.Render(l.Fingerprint),
		); err != nil {
			return err
		}
	}
	return w.Flush()
}

func formatRelativeTime(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02 15:04")
	}
}
