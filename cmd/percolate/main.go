// Command percolate runs bond and site percolation sweeps and Monte Carlo
// ensembles on grids, Erdős–Rényi graphs and DIMACS edge files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amonclus/percolate/cmd/percolate/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "percolate:", err)
		stop()
		os.Exit(1)
	}
}
