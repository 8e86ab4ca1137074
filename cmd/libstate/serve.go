package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/libstate/internal/cli"
	"github.com/aretw0/libstate/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var serveCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "Start the HTTP control server",
	Long: `Serves the graph in FILE over HTTP: POST /runs starts a run, POST /stop stops it,
GET /graph returns the Mermaid diagram and GET /metrics the Prometheus metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", args[0], addr)

		return cli.Serve(ctx, cli.ServeOptions{
			Options: commonOptions(cmd, args),
			Addr:    addr,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
