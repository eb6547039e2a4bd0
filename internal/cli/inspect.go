package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	"github.com/jmylchreest/swatch/internal/preview"
)

func (a *app) newPreviewCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the palette in the terminal",
		Long: `Show every palette token. On a colour terminal each family is drawn as a row
of swatches; otherwise, or with --plain, a table of values is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			palette, err := a.buildPalette()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !plain && preview.SupportsColour(out) {
				width := preview.TerminalWidth(out, 80) / 10
				return preview.Grid(out, palette, max(width, preview.DefaultWidth))
			}

			format, _ := common.ParseFormat(a.cfg.Format)
			tbl := NewTable([]string{"TOKEN", "VALUE", "HEX"})
			for _, t := range palette.Tokens() {
				tbl.AddRow([]string{t.Name, common.Value(t.Colour, format), common.Hex(t.Colour)})
			}
			return tbl.Write(out)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table even on a colour terminal")
	return cmd
}

func (a *app) newAuditCmd() *cobra.Command {
	var (
		background string
		failing    bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report the contrast of every token against a background",
		Long: `Report each token's lightness contrast against a background colour and
whether it meets the AA (4.5) and AAA (7) thresholds.

Examples:
  swatch audit -p '#2563eb'
  swatch audit -p '#2563eb' --background '#111827' --failing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bg, err := parseLCH(background)
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}

			palette, err := a.buildPalette()
			if err != nil {
				return err
			}

			tbl := NewTable([]string{"TOKEN", "CONTRAST", "AA", "AAA"})
			tbl.AlignRight(1)
			for _, e := range palette.Audit(bg) {
				if failing && e.AA {
					continue
				}
				tbl.AddRow([]string{e.Token.Name, formatRatio(e.Contrast), passMark(e.AA), passMark(e.AAA)})
			}
			return tbl.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&background, "background", "#ffffff", "background colour to audit against")
	cmd.Flags().BoolVar(&failing, "failing", false, "only list tokens below AA")
	return cmd
}

func newContrastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Print the lightness contrast between two colours",
		Example: `  swatch contrast '#2563eb' '#ffffff'
  swatch contrast 'lch(40% 60 280)' 95,5,250`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := parseLCH(args[0])
			if err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			bg, err := parseLCH(args[1])
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}

			ratio := colour.Contrast(fg, bg)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  AA: %s  AAA: %s\n",
				formatRatio(ratio), passMark(ratio >= colour.WCAGAA), passMark(ratio >= colour.WCAGAAA))
			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <colour>...",
		Short: "Convert colours to lch, hex and rgb",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := NewTable([]string{"INPUT", "LCH", "HEX", "RGB"})
			for _, arg := range args {
				c, err := parseLCH(arg)
				if err != nil {
					return err
				}
				tbl.AddRow([]string{arg, c.String(), common.Hex(c), common.RGB(c)})
			}
			return tbl.Write(cmd.OutOrStdout())
		},
	}
}

func parseLCH(s string) (colour.LCH, error) {
	c, err := colour.ParseColor(s)
	if err != nil {
		return colour.LCH{}, err
	}
	return colour.ToLCH(c)
}

func formatRatio(r float64) string {
	return strconv.FormatFloat(r, 'f', 2, 64) + ":1"
}

func passMark(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
