package main

import (
	"os"

	"github.com/aretw0/libstate/internal/cli"
	"github.com/aretw0/libstate/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Describe the states and transitions in FILE",
	Long:  `Prints a markdown report of the graph and its validation findings, styled when stdout is a terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		render := tui.PlainRenderer()
		if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				width = 0
			}
			styled, err := tui.NewRenderer(width)
			if err != nil {
				return err
			}
			render = styled
		}
		return cli.Inspect(commonOptions(cmd, args), cmd.OutOrStdout(), render)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
