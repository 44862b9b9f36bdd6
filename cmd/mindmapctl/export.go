package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/services"
	"github.com/zaheyak/Content-Studio-sub000/infrastructure/export"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var in, out, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a mind map to SVG or PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.domainConfig()
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFromPath(out)
			}
			renderer, err := exporterFor(format)
			if err != nil {
				return err
			}
			data, err := readData(cmd, in)
			if err != nil {
				return err
			}

			g := services.NewSerializer(cfg).Deserialize(data)
			viewport := valueobjects.IdentityViewport(valueobjects.ZoomPolicy{
				Min:       cfg.MinZoom,
				Max:       cfg.MaxZoom,
				InFactor:  cfg.ZoomInFactor,
				OutFactor: cfg.ZoomOutFactor,
			})
			scene := services.NewRenderer(cfg).Render(g, viewport)

			if err := writeOutput(cmd, out, func(w io.Writer) error {
				return renderer.Render(w, scene)
			}); err != nil {
				return err
			}
			report(cmd, "exported "+renderer.Format(), data, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "-", "Input mind map JSON")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "svg or png (default from --out extension, else svg)")

	return cmd
}

func formatFromPath(path string) string {
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "svg"
}

func exporterFor(format string) (ports.SnapshotRenderer, error) {
	switch format {
	case "svg":
		return export.NewSVGRenderer(), nil
	case "png":
		return export.NewPNGRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
