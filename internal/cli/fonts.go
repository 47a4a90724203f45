package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/stakpak/paks-og/pkg/fonts"
)

// fontsCommand creates the font management command.
func (c *CLI) fontsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "Download or check the card fonts",
	}

	cmd.AddCommand(c.fontsFetchCommand())
	cmd.AddCommand(c.fontsCheckCommand())

	return cmd
}

// fontsFetchCommand creates the "fonts fetch" subcommand.
func (c *CLI) fontsFetchCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the remote font pair into the local fonts directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if dir == "" {
				dir, err = defaultFontsDir(cfg.Fonts.Dir, cfg.Fonts.Subproject)
				if err != nil {
					return err
				}
			}

			src := &fonts.RemoteSource{
				RegularURL: cfg.Fonts.RegularURL,
				BoldURL:    cfg.Fonts.BoldURL,
				Timeout:    cfg.Fonts.FetchTimeout,
				Retries:    1,
			}

			spin := startSpinner(cmd.Context(), cmd.ErrOrStderr(), "Downloading "+cfg.Fonts.Family)
			fs, err := src.Load(cmd.Context(), cfg.Fonts.Family)
			spin.Stop()
			if err != nil {
				return fmt.Errorf("download fonts: %w", err)
			}
			if err := fonts.Save(dir, fs); err != nil {
				return fmt.Errorf("save fonts: %w", err)
			}

			printSuccess("Saved %s fonts", StyleHighlight.Render(fs.Family))
			for _, w := range []fonts.Weight{fonts.WeightRegular, fonts.WeightBold} {
				printFile(filepath.Join(dir, fonts.FileName(fs.Family, w)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "target directory (default: fonts.dir, or <subproject>/public/fonts)")
	return cmd
}

// fontsCheckCommand creates the "fonts check" subcommand.
func (c *CLI) fontsCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report which font source resolves",
		Long: `Try every configured font source in order and report which ones can
supply the font pair. The first working source is the one the server uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Font sources"))
			var (
				first string
				errs  []error
			)
			for _, src := range fontSources(cfg) {
				start := time.Now()
				fs, err := src.Load(cmd.Context(), cfg.Fonts.Family)
				elapsed := time.Since(start).Round(time.Millisecond)
				if err != nil {
					printError("%s: %v", src.Name(), err)
					errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
					continue
				}
				if first == "" {
					first = src.Name()
				}
				printSuccess("%s: %s %s", src.Name(), StyleValue.Render(fs.Family), StyleDim.Render(elapsed.String()))
			}

			if first == "" {
				return fmt.Errorf("no font source available: %w", errors.Join(errs...))
			}
			printKeyValue("active", first)
			return nil
		},
	}

	addSourceFlags(cmd)
	return cmd
}

// defaultFontsDir returns the directory LocalSource checks first.
func defaultFontsDir(explicit, subproject string) (string, error) {
	dirs, err := (&fonts.LocalSource{Dir: explicit, Subproject: subproject}).Dirs()
	if err != nil {
		return "", err
	}
	return dirs[0], nil
}
