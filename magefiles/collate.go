//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Collate builds the CLI and runs a full collation over ./inputs.
func Collate() error {
	mg.Deps(Build)

	cmd := exec.Command(filepath.Join(binDir, binName), "collate")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Inspect builds the CLI and previews discovery and the page mapping.
func Inspect() error {
	mg.Deps(Build)

	cmd := exec.Command(filepath.Join(binDir, binName), "inspect")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
