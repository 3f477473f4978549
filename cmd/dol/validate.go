package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dol/internal/diagfmt"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [flags] <file.dol|->",
		Short: "Report whether a DOL file is structurally valid",
		Long:  `Print "valid" or "invalid" for one file (or stdin with "-"); the exit code mirrors the answer`,
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	cmd.Flags().String("strategy", "scoped", "analysis strategy (scoped|legacy)")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd, configStart(args[0]))
	if err != nil {
		return err
	}
	fs, res, err := analyzeInput(cmd, args[0], cfg)
	if err != nil {
		return err
	}
	if res.Success() {
		fmt.Fprintln(cmd.OutOrStdout(), "valid")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "invalid")
	if !quietFlag(cmd) {
		diagfmt.Short(cmd.ErrOrStderr(), diagfmt.ResultPath(res, fs, diagfmt.PathModeAuto), res.Result.Errors, false)
	}
	return exitError{code: exitFindings}
}
