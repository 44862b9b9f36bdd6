package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

func inspectCmd(opts *rootOptions) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate a mind map payload and list its nodes",
		Long:  "Loads the payload the way the editor does and reports anything that would be dropped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.domainConfig()
			if err != nil {
				return err
			}
			data, err := readData(cmd, in)
			if err != nil {
				return err
			}

			g := services.NewSerializer(cfg).Deserialize(data)
			out := cmd.OutOrStdout()

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tLEVEL\tX\tY")
			for _, n := range g.Nodes() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.0f\t%.0f\n",
					n.ID().String(), n.Label().String(), n.Level(), n.Position().X(), n.Position().Y())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			droppedNodes := len(data.Nodes) - g.NodeCount()
			droppedConns := len(data.Connections) - g.ConnectionCount()
			fmt.Fprintf(out, "\n%d nodes, %d connections\n", g.NodeCount(), g.ConnectionCount())
			if droppedNodes > 0 || droppedConns > 0 {
				bad.Fprintf(out, "dropped %d nodes and %d connections that break the graph rules\n", droppedNodes, droppedConns)
			} else {
				good.Fprintln(out, "payload is valid")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "-", "Input mind map JSON")

	return cmd
}
