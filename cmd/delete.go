package cmd

import (
	"fmt"
	"log/slog"

	"github.com/theirongolddev/kcaltank/internal/cli"
	"github.com/theirongolddev/kcaltank/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more logs (ids or unique id prefixes)",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p := appConfig.ModelProfile()
	ids := make([]string, 0, len(args))
	seen := make(map[string]bool, len(args))
	fmt.Println()
	for _, a := range args {
		id, err := resolveID(st, a)
		if err != nil {
			return err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		raw, err := st.GetLog(id)
		if err != nil {
			return err
		}
		l := pipeline.NormalizeOne(raw, p)
		fmt.Printf("  %s  %s  %s  %s\n", shortID(id), formatWhen(l.Timestamp), cli.DescribeLog(l),
			cli.Signed(l.Kcal, cli.FormatKcal(l.Kcal)))
		ids = append(ids, id)
	}
	fmt.Println()

	if !deleteYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %d log(s)?", len(ids))).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			fmt.Println("  Nothing deleted.")
			return nil
		}
	}

	n, err := st.DeleteLogs(ids...)
	if err != nil {
		return err
	}
	slog.Info("logs deleted", "count", n)
	fmt.Printf("  Deleted %d log(s).\n\n", n)
	return nil
}
