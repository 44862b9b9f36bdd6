package main

import (
	"github.com/spf13/cobra"

	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

func layoutCmd(opts *rootOptions) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Place every node of a mind map on the radial layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.domainConfig()
			if err != nil {
				return err
			}
			data, err := readData(cmd, in)
			if err != nil {
				return err
			}

			serializer := services.NewSerializer(cfg)
			g := serializer.Deserialize(data)
			services.NewRadialLayout(cfg).Apply(g)
			g.PullEvents()
			data = serializer.Serialize(g)

			if err := writeData(cmd, out, data); err != nil {
				return err
			}
			report(cmd, "laid out", data, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "-", "Input mind map JSON")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file")

	return cmd
}
