package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dol/internal/ast"
	"dol/internal/diagfmt"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.dol|->",
		Short: "Print the declaration tree of a DOL file",
		Long:  `Analyze one file (or stdin with "-") and print its spirits and functions`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|result)")
	cmd.Flags().String("strategy", "scoped", "analysis strategy (scoped|legacy)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "json", "result":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	cfg, err := loadProjectConfig(cmd, configStart(args[0]))
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	fs, res, err := analyzeInput(cmd, args[0], cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		err = diagfmt.FormatASTPretty(out, diagfmt.ResultPath(res, fs, diagfmt.PathModeAuto), res.Result.AST)
		if err == nil && !quietFlag(cmd) {
			spirits, functions := ast.Count(res.Result.AST)
			_, err = fmt.Fprintf(out, "%d spirit(s), %d function(s)\n", spirits, functions)
		}
	case "json":
		err = diagfmt.FormatASTJSON(out, res.Result.AST)
	case "result":
		err = diagfmt.ResultJSON(out, res.Result)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if format != "result" && !quietFlag(cmd) {
		diagfmt.PrettyResult(cmd.ErrOrStderr(), res, fs, diagfmt.PrettyOpts{Color: useColor, PathMode: diagfmt.PathModeAuto, ShowNotes: true})
	}
	if !res.Success() {
		return exitError{code: exitFindings}
	}
	return nil
}
