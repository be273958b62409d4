package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/prehistoric-idle/internal/converter"
	"github.com/napolitain/prehistoric-idle/internal/loader"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

var dataDir string

func main() {
	rootCmd := &cobra.Command{
		Use:   "cards",
		Short: "Inspect and validate the card catalog",
		Long: `Lists the cards of a catalog, checks a catalog file for structural
errors, and prints the prerequisite tree.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "data", "Path to data directory")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List cards",
			RunE: func(cmd *cobra.Command, args []string) error {
				catalog, err := loader.LoadCatalogDir(dataDir)
				if err != nil {
					return err
				}
				printCatalog(catalog)
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate [file]",
			Short: "Validate a catalog file (default <data>/cards.yaml)",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runValidate,
		},
		&cobra.Command{
			Use:   "tree",
			Short: "Print the prerequisite tree",
			RunE: func(cmd *cobra.Command, args []string) error {
				catalog, err := loader.LoadCatalogDir(dataDir)
				if err != nil {
					return err
				}
				fmt.Print(prerequisiteTree(catalog))
				return nil
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := filepath.Join(dataDir, loader.CatalogFile)
	if len(args) == 1 {
		path = args[0]
	}

	catalog, err := loader.LoadCatalog(path)
	if err != nil {
		color.Red("✗ %s", path)
		for _, line := range strings.Split(err.Error(), "\n") {
			color.Red("   %s", line)
		}
		return fmt.Errorf("catalog is invalid")
	}

	color.New(color.FgGreen, color.Bold).Printf("✓ %s: %d cards, baseline %s\n", path, len(catalog.Cards), catalog.Baseline)
	return nil
}

func printCatalog(c *models.Catalog) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Title", "Kind", "Start", "Produces", "Levels", "Imagine", "Discover", "Needs", "Effect"}),
	)

	for _, card := range c.Cards {
		var levels []string
		for _, l := range card.AcceptedWorkerLevels {
			levels = append(levels, fmt.Sprintf("L%d", int(l)))
		}
		row := []string{
			card.ID,
			card.Title,
			converter.KindLabel(card.Kind),
			converter.StateLabel(card.State),
			converter.ProductionText(card.Production.Rate(models.Food), card.Production.Rate(models.Thoughts)),
			strings.Join(levels, " "),
			requirement(card.Research.ToImaginedRequired),
			requirement(card.Research.ToDiscoveredRequired),
			strings.Join(card.Prerequisites, ", "),
			effectText(card),
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func requirement(v float64) string {
	if v == 0 {
		return ""
	}
	return converter.FormatRate(v)
}

func effectText(c *models.Card) string {
	var parts []string
	if e := c.OnDiscovery; e != nil {
		parts = append(parts, fmt.Sprintf("%d × L%d → L%d", e.Amount, int(e.FromLevel), int(e.ToLevel)))
	}
	if u := c.PersistentUpgrade; u != nil {
		parts = append(parts, fmt.Sprintf("food ×%.2f", u.Multiplier))
	}
	if c.MinimumThinkingLevel > models.Level1 {
		parts = append(parts, fmt.Sprintf("needs L%d thinkers", int(c.MinimumThinkingLevel)))
	}
	return strings.Join(parts, "; ")
}

// prerequisiteTree renders cards under the cards they require, roots first.
// A card with several prerequisites appears under each of them.
func prerequisiteTree(c *models.Catalog) string {
	children := make(map[string][]string)
	var roots []string
	for _, card := range c.Cards {
		if len(card.Prerequisites) == 0 {
			roots = append(roots, card.ID)
			continue
		}
		for _, p := range card.Prerequisites {
			children[p] = append(children[p], card.ID)
		}
	}

	var b strings.Builder
	var walk func(id string, depth int, seen map[string]bool)
	walk = func(id string, depth int, seen map[string]bool) {
		title := id
		if card := c.Card(id); card != nil && card.Title != "" {
			title = card.Title
		}
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("   ", depth), title)
		if seen[id] {
			return
		}
		seen[id] = true
		for _, child := range children[id] {
			walk(child, depth+1, seen)
		}
		delete(seen, id)
	}
	for _, r := range roots {
		walk(r, 0, map[string]bool{})
	}
	return b.String()
}
