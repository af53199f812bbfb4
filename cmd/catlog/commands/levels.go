package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/catlog/pkg/catlog"
)

func init() {
	rootCmd.AddCommand(levelsCmd)
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the severity levels",
	Long: `List the severity levels in ascending order with their console color
and the embed color used for webhook notifications.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-3s %-*s %s\n", "#", catlog.MaxLevelNameLength, "LEVEL", "EMBED")
		for _, l := range catlog.Levels() {
			name := fmt.Sprintf("%-*s", catlog.MaxLevelNameLength, l.String())
			fmt.Fprintf(w, "%-3d %s #%06X\n", int(l), color.New(l.ConsoleColor()).Sprint(name), l.EmbedColor())
		}
		return nil
	},
}
