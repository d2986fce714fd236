package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/chimera-lang/chimera/chimera"
	"github.com/chimera-lang/chimera/internal/log"
	"github.com/chimera-lang/chimera/ir/ssa"
	"github.com/spf13/cobra"
)

var BuildCmd = &cobra.Command{
	Use:   "build [file.cst.json]",
	Short: "Lower a parsed Chimera unit to its block form",
	Long: "Lower a parsed Chimera unit to its block form.\n" +
		"With no argument the input is taken from chimera.toml in the working directory.\n" +
		"With -o the result is written as msgpack for the backend; otherwise a textual dump is printed.",
	RunE:         runBuild,
	SilenceUsage: true,
}

var (
	buildOutPath  *string
	buildLogLevel *int
)

// projectFile is the optional chimera.toml next to the invocation.
type projectFile struct {
	Input string `toml:"input"`
	Out   string `toml:"out"`
}

const projectFileName = "chimera.toml"

func init() {
	buildOutPath = BuildCmd.Flags().StringP("out", "o", "", "output path for the msgpack-encoded block form")
	buildLogLevel = BuildCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runBuild(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*buildLogLevel))

	input, outPath, err := resolveTargets(args)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("could not open unit: %w", err)
	}
	defer f.Close()

	program, err := chimera.CompileUnit(f)
	if err != nil {
		return reportCompileError(err)
	}

	if outPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), program.String())
		return nil
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("could not create output: %w", err)
	}
	defer out.Close()
	if err := ssa.Encode(out, program); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	return nil
}

// resolveTargets decides input and output paths: an explicit argument
// wins, then chimera.toml; the -o flag overrides the project file's
// out entry.
func resolveTargets(args []string) (input, out string, err error) {
	out = *buildOutPath
	if len(args) > 0 {
		return args[0], out, nil
	}
	var project projectFile
	if _, err := toml.DecodeFile(projectFileName, &project); err != nil {
		return "", "", fmt.Errorf("no input argument and no readable %s: %w", projectFileName, err)
	}
	if project.Input == "" {
		return "", "", fmt.Errorf("%s does not name an input", projectFileName)
	}
	if out == "" {
		out = project.Out
	}
	return project.Input, out, nil
}
