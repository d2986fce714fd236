package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chimera-lang/chimera/chimera"
	"github.com/chimera-lang/chimera/frontend/cherr"
	"github.com/chimera-lang/chimera/internal/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check file.cst.json",
	Short:        "Type-check a parsed Chimera unit without lowering it",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var checkLogLevel *int

func init() {
	checkLogLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLogLevel))

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("could not open unit: %w", err)
	}
	defer f.Close()

	checked, err := chimera.CheckUnit(f)
	if err != nil {
		return reportCompileError(err)
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "ok: %d definitions\n", len(checked.Items))
	return nil
}

// reportCompileError renders a user-facing compile error in red and
// swallows the raw error so cobra does not print it a second time.
func reportCompileError(err error) error {
	if ce, ok := err.(cherr.ChimeraError); ok {
		color.New(color.FgRed).Fprintln(os.Stderr, cherr.FormatWithCode(ce))
		return fmt.Errorf("compilation failed")
	}
	return err
}
