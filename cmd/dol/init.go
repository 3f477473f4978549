package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dol/internal/project"
)

const defaultMainDOL = `// Entry point of the project.
spirit Main {
  pub fn start() {
  }
}
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new dol project",
		Long: `Initialize a new dol project by creating a project manifest (dol.toml)
and an entry file (main.dol). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

// runInit creates dol.toml and main.dol in the target directory. It refuses
// to overwrite an existing manifest and keeps an existing main.dol.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "dol-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	var buf bytes.Buffer
	if err := project.DefaultManifest(name).Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.dol")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainDOL), 0o600); err != nil {
			return fmt.Errorf("failed to write main.dol: %w", err)
		}
		createdMain = true
	}

	if quietFlag(cmd) {
		return nil
	}
	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized dol project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintln(out, "  - main.dol")
	} else {
		fmt.Fprintln(out, "  - main.dol (existing)")
	}
	return nil
}
