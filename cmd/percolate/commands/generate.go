package commands

import (
	"github.com/spf13/cobra"

	"github.com/amonclus/percolate/config"
	"github.com/amonclus/percolate/dimacs"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "generate [grid|er]",
		Short:     "Write a generated graph as a DIMACS edge file",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{config.KindGrid, config.KindER},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.Graph.Kind = args[0]
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			return a.generate(cmd)
		},
	}
}

func (a *app) generate(cmd *cobra.Command) error {
	g, err := a.graph()
	if err != nil {
		return err
	}
	if a.cfg.Output != "" {
		if err = dimacs.WriteFile(a.cfg.Output, g); err != nil {
			return err
		}
	} else if err = dimacs.Write(cmd.OutOrStdout(), g); err != nil {
		return err
	}
	a.log.Info("graph written", "kind", a.cfg.Graph.Kind, "n", g.N, "edges", len(g.Edges), "output", a.cfg.Output)

	return nil
}
