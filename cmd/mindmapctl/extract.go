package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

func extractCmd(opts *rootOptions) *cobra.Command {
	var (
		prompt  string
		context string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "extract [text...]",
		Short: "Build a keyword mind map from a prompt and lesson text",
		Long:  "Builds the same root-and-keywords map the API falls back to when the generator is unavailable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.domainConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				context = strings.TrimSpace(context + " " + strings.Join(args, " "))
			}

			g := services.NewKeywordExtractor(cfg).BuildGraph(prompt + " " + context)
			data := services.NewSerializer(cfg).Serialize(g)

			if err := writeData(cmd, out, data); err != nil {
				return err
			}
			report(cmd, "extracted", data, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Generation prompt")
	cmd.Flags().StringVarP(&context, "context", "c", "", "Lesson text")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file")

	return cmd
}
