package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/pipeline"
)

// renderCommand creates the "render" command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		opts    pipeline.Options
		noPrint bool
	)

	cmd := &cobra.Command{
		Use:   "render <owner>/<name>",
		Short: "Render one preview card to a file",
		Long: `Render the preview card for a package and write it as a PNG, as the SVG
vector image, or as the JSON layout tree.

Registry failures fall back to the default card, exactly as the server does.`,
		Example: `  paks-og render acme/widgets
  paks-og render acme/widgets --format svg -o widgets.svg
  paks-og render acme/widgets --width 600 --offline -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := parsePakRef(args[0])
			if err != nil {
				return err
			}
			opts.Owner, opts.Name = owner, name
			if opts.Width == 0 && c.Config != nil {
				opts.Width = c.Config.Render.Width
			}
			if output == "" {
				output = name + "." + formatExt(opts.Format)
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.Offline)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			res, err := runner.Execute(ctx, opts)
			if err != nil {
				return err
			}

			w, closeFn, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if _, err := w.Write(res.Artifact); err != nil {
				_ = closeFn()
				return fmt.Errorf("write output: %w", err)
			}
			if err := closeFn(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			prog.done("Rendered " + res.Summary.URI())
			if output != "-" && !noPrint {
				if res.Fallback && !opts.Offline {
					printWarning("Registry lookup failed; rendered the default card")
				}
				printSuccess("Rendered %s", StyleHighlight.Render(res.Summary.URI()))
				printFile(output)
				printResult(res)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default <name>.<format>)`)
	f.StringVarP(&opts.Format, "format", "f", pipeline.FormatPNG, "output format: png, svg or json")
	f.IntVar(&opts.Width, "width", 0, "PNG width in pixels (default 1200)")
	f.BoolVar(&opts.Offline, "offline", false, "skip the registry and render the default card")
	f.BoolVar(&opts.Refresh, "refresh", false, "ignore cached registry responses and cards")
	f.BoolVarP(&noPrint, "quiet", "q", false, "do not print a summary")
	addSourceFlags(cmd)

	return cmd
}

// parsePakRef splits "owner/name".
func parsePakRef(ref string) (string, string, error) {
	owner, name, ok := strings.Cut(ref, "/")
	if !ok || owner == "" || name == "" {
		return "", "", perrors.New(perrors.ErrCodeInvalidInput, "expected <owner>/<name>, got %q", ref)
	}
	return owner, name, nil
}

func formatExt(format string) string {
	if format == "" {
		return pipeline.FormatPNG
	}
	return format
}
