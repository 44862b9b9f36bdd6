package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

type rootOptions struct {
	environment string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "mindmapctl",
		Short:         "Inspect, lay out and export lesson mind maps",
		Long:          brand.Sprint("mindmapctl") + " works on mind map JSON payloads without a running server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.environment, "env", "development", "Domain configuration profile")

	root.AddCommand(
		extractCmd(opts),
		layoutCmd(opts),
		exportCmd(opts),
		inspectCmd(opts),
	)
	return withErrorReport(root)
}

// withErrorReport prints RunE failures to stderr
func withErrorReport(root *cobra.Command) *cobra.Command {
	for _, c := range root.Commands() {
		run := c.RunE
		if run == nil {
			continue
		}
		c.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "mindmapctl: %v\n", err)
			}
			return err
		}
	}
	return root
}

func (o *rootOptions) domainConfig() (*config.DomainConfig, error) {
	cfg := config.LoadDomainConfig(o.environment)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readData loads a MindMapData payload; "-" reads stdin
func readData(cmd *cobra.Command, path string) (content.MindMapData, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return content.MindMapData{}, err
		}
		defer f.Close()
		r = f
	}

	var data content.MindMapData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return content.MindMapData{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes to path, or to stdout for "-"
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeData(cmd *cobra.Command, path string, data content.MindMapData) error {
	return writeOutput(cmd, path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	})
}

// report prints a one-line summary to stderr so stdout stays pipeable
func report(cmd *cobra.Command, verb string, data content.MindMapData, dest string) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n",
		good.Sprint(verb),
		fmt.Sprintf("%d nodes, %d connections", data.NodeCount, data.ConnectionCount),
		subtle.Sprint("-> "+dest),
	)
}
