package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dol/internal/logging"
	"dol/internal/version"
	"dol/pkg/dol"
)

// Коды выхода
const (
	exitOK       = 0
	exitFindings = 1 // анализ нашёл ошибки
	exitFailure  = 2 // неверные аргументы, I/O и прочие сбои
)

// exitError carries a non-zero exit code whose cause has already been
// reported to the user.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "dol",
		Short:             "DOL structural analyzer",
		Long:              `dol checks the structure of DOL sources: spirit and function declarations, brace balance and minimum content`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRuntime,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newWatchCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of warnings to report per file (0 = unlimited)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().String("log-format", "text", "log format (text|json)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
	return root
}

// setupRuntime builds the logger from the global flags, stores it in the
// command context and initializes the dol runtime with it.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	level, err := flags.GetString("log-level")
	if err != nil {
		return err
	}
	format, err := flags.GetString("log-format")
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	if _, err := colorEnabled(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	dol.Initialize(dol.WithLogger(logger))
	logger.Debug("dol starting", "command", cmd.CommandPath(), "version", version.Version)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and maps the outcome to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defer dol.Shutdown()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "dol: %v\n", err)
	return exitFailure
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
