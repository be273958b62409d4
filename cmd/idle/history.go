package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/prehistoric-idle/internal/converter"
	"github.com/napolitain/prehistoric-idle/internal/history"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <db> [run-id]",
		Short: "List recorded runs or summarize one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := history.Open(args[0])
			if err != nil {
				return err
			}
			defer rec.Close()

			if len(args) == 2 {
				sum, err := rec.Summary(args[1])
				if err != nil {
					return err
				}
				printHistorySummary(args[1], sum)
				return nil
			}
			return printRuns(rec)
		},
	}
}

func printRuns(rec *history.Recorder) error {
	runs, err := rec.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		color.Yellow("No runs recorded")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Run", "Started", "Preset", "Ticks", "Min Food", "Max Food", "Pauses"}),
	)
	for _, r := range runs {
		sum, err := rec.Summary(r.ID)
		if err != nil {
			return err
		}
		row := []string{
			r.ID,
			r.Started().Format("2006-01-02 15:04"),
			r.Preset,
			strconv.Itoa(sum.Ticks),
			converter.FormatAmount(sum.MinFood),
			converter.FormatAmount(sum.MaxFood),
			strconv.Itoa(sum.Pauses),
		}
		_ = table.Append(row)
	}
	return table.Render()
}

func printHistorySummary(runID string, sum history.Summary) {
	infoColor := color.New(color.FgYellow)
	infoColor.Printf("\n📈 Run %s\n", runID)
	fmt.Printf("   Ticks recorded: %d\n", sum.Ticks)
	fmt.Printf("   Food: min %s, max %s\n", converter.FormatAmount(sum.MinFood), converter.FormatAmount(sum.MaxFood))
	fmt.Printf("   Paused: %d ticks over %d shortages\n", sum.PausedTicks, sum.Pauses)
	fmt.Printf("   Cards discovered: %d\n", sum.Discovered)
}
