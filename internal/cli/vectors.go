package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cryptomobile/internal/services/vector"
)

// ErrValidationFailed is returned when a vector file has mismatching records,
// so the process exits non-zero.
var ErrValidationFailed = errors.New("vector validation failed")

func (a *app) vectorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Generate and check test vector files",
	}
	cmd.AddCommand(a.generateCmd(), a.validateCmd())
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	var p vector.GenParams
	var out string
	cmd := &cobra.Command{
		Use:   "generate <algorithm>",
		Short: "Write a KAT, MMT or MCT vector set in the text format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Algorithm = args[0]
			p.Engine = a.engine()
			set, err := vector.Generate(p)
			if err != nil {
				return err
			}
			a.log.Debugw("generated", "algorithm", set.Algorithm, "test", set.TestMode, "records", set.Len(), "fingerprint", set.Fingerprint())

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			_, err = io.WriteString(w, set.String())
			return err
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&p.Test, "test", "t", string(vector.KAT), "KAT, MMT or MCT")
	fl.IntVarP(&p.Count, "count", "c", 0, "number of MMT or MCT cases")
	fl.IntVarP(&p.Rounds, "rounds", "r", 0, "MCT chain length")
	fl.BoolVarP(&p.IncludeExpected, "expected", "e", false, "include the expected answers")
	fl.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Recompute every answer in a vector file and report mismatches",
		Long: `Recompute every answer in a vector file and report mismatches. Use "-" to
read the file from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			set, err := vector.Parse(in)
			if err != nil {
				return err
			}
			res, err := vector.Validate(a.engine(), set)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d records, %d passed, %d failed\n", res.Algorithm, res.Total, res.Passed, res.Failed)
			for _, m := range res.Failures {
				fmt.Fprintf(w, "  %s COUNT=%d expected %s got %s\n", m.Section, m.Count, m.Expected, m.Got)
			}
			if res.Failed > 0 {
				return ErrValidationFailed
			}
			return nil
		},
	}
}
