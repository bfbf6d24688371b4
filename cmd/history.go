package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/kcaltank/internal/catalog"
	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/model"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log", "ls"},
	Short:   "List logged drinks and exercise, newest first",
	RunE:    runHistory,
}

var historyFlags struct {
	page   int
	limit  int
	filter string
}

func init() {
	f := historyCmd.Flags()
	f.IntVarP(&historyFlags.page, "page", "p", 1, "Page number")
	f.IntVarP(&historyFlags.limit, "limit", "l", 20, "Logs per page")
	f.StringVarP(&historyFlags.filter, "filter", "f", "", "Only logs whose name, brewery, brand or memo contain this text")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	if historyFlags.limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", historyFlags.limit)
	}
	if historyFlags.page < 1 {
		historyFlags.page = 1
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p := appConfig.ModelProfile()
	offset := (historyFlags.page - 1) * historyFlags.limit

	var (
		page  []model.LogEntry
		total int
	)
	if historyFlags.filter == "" {
		total, err = st.LogCount()
		if err != nil {
			return fmt.Errorf("counting logs: %w", err)
		}
		raw, err := st.ListLogs(offset, historyFlags.limit)
		if err != nil {
			return fmt.Errorf("listing logs: %w", err)
		}
		page = pipeline.Normalize(raw, p)
	} else {
		raw, err := st.LoadAllLogs()
		if err != nil {
			return fmt.Errorf("loading logs: %w", err)
		}
		matched := pipeline.FilterByText(pipeline.Normalize(raw, p), historyFlags.filter)
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		})
		total = len(matched)
		if offset < total {
			page = matched[offset:min(offset+historyFlags.limit, total)]
		}
	}

	if total == 0 {
		fmt.Println("\n  No logs found.")
		return nil
	}
	if len(page) == 0 {
		fmt.Printf("\n  Page %d is empty (%d logs).\n", historyFlags.page, total)
		return nil
	}

	pages := (total + historyFlags.limit - 1) / historyFlags.limit
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  page %d/%d (%d logs)", historyFlags.page, pages, total)))
	fmt.Println()

	base := appConfig.Exercise.Base
	rows := make([][]string, 0, len(page))
	for _, l := range page {
		rows = append(rows, []string{
			shortID(l.ID),
			l.Timestamp.Local().Format("Jan 02 15:04"),
			cli.Truncate(cli.DescribeLog(l), 28),
			cli.Signed(l.Kcal, cli.FormatKcal(l.Kcal)),
			cli.FormatMinutes(pipeline.SignedMinutes(l.Kcal, base, p), true),
			cli.FormatRating(l.Rating),
			cli.Truncate(l.Memo, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "When", "What", "Kcal", catalog.ResolveExercise(base).Label, "Rating", "Memo"},
		Rows:    rows,
	}))
	return nil
}

func formatWhen(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
