package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
	"github.com/chase3718/lou-fretboard/internal/tui"
)

var (
	boardHighlight string
	boardFrets     int
	boardNotes     bool
)

var scaleCmd = &cobra.Command{
	Use:   "scale ROOT TYPE...",
	Short: "Print the notes and degrees of a scale",
	Example: `  lou-fretboard scale A minor
  lou-fretboard scale C# major pentatonic`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scale, err := resolveArgs(args)
		if err != nil {
			return err
		}
		th := fretboard.DefaultTheory()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%s %s\n", scale.Root, scale.Type.Label())
		fmt.Fprintln(w, "NOTE\tCHROMA\tINTERVAL\tDEGREE")
		for _, n := range scale.Notes {
			chroma, err := th.Chroma(n)
			if err != nil {
				return err
			}
			raw, err := th.Distance(scale.Root, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", n, chroma, raw, fretboard.FormatDegree(raw))
		}
		return w.Flush()
	},
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List the supported scale types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range fretboard.ScaleTypes() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", t, t.Label())
		}
		return nil
	},
}

var boardCmd = &cobra.Command{
	Use:   "board ROOT TYPE...",
	Short: "Print the fretboard for a scale",
	Example: `  lou-fretboard board A minor pentatonic --highlight 3
  lou-fretboard board G major --frets 12 --notes`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scale, err := resolveArgs(args)
		if err != nil {
			return err
		}
		if !fretboard.ValidHighlight(boardHighlight) {
			return fmt.Errorf("%w: %q", fretboard.ErrUnknownHighlight, boardHighlight)
		}
		frets := cfg.Defaults.Frets
		if cmd.Flags().Changed("frets") {
			frets = boardFrets
		}
		eval, err := newEvaluator()
		if err != nil {
			return err
		}
		grid, err := eval.Board(fretboard.StandardTuning, frets, scale, boardHighlight)
		if err != nil {
			return err
		}
		styles := tui.DefaultStyles(eval.Palette())
		fmt.Fprintln(cmd.OutOrStdout(), styles.Title.Render(scale.Root+" "+scale.Type.Label()))
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBoard(grid, styles, tui.RenderOptions{NoteNames: boardNotes}))
		return nil
	},
}

func init() {
	boardCmd.Flags().StringVar(&boardHighlight, "highlight", "", "degree to emphasise: R, 2, 3, 4, 5, 6 or 7")
	boardCmd.Flags().IntVar(&boardFrets, "frets", fretboard.MaxFret, "highest fret to show")
	boardCmd.Flags().BoolVar(&boardNotes, "notes", false, "label markers with note names instead of degrees")
	rootCmd.AddCommand(scaleCmd, scalesCmd, boardCmd)
}

// resolveArgs reads ROOT TYPE... where the type may span several words.
func resolveArgs(args []string) (fretboard.Scale, error) {
	root := fretboard.NormalizeRoot(args[0])
	typ, err := fretboard.ParseScaleType(strings.Join(args[1:], " "))
	if err != nil {
		return fretboard.Scale{}, err
	}
	return fretboard.NewResolver(fretboard.DefaultTheory(), logger).Resolve(root, typ)
}
