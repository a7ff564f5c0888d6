//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/pkg/errors"
)

var lintArgs = []string{"run", "--timeout", "10m", "./cmd/...", "./internal/..."}

// Fixes what golangci-lint can fix on its own.
func LintFix() error {
	mg.Deps(golangciLintCheck)
	output, err := golangciLintTool.output(append(lintArgs, "--fix")...)
	fmt.Println(output)
	if err != nil {
		return errors.Errorf("golangci-lint could not fix everything: %v", err)
	}
	return nil
}

// Fails if golangci-lint reports any issue.
func CheckLint() error {
	mg.Deps(golangciLintCheck)
	output, err := golangciLintTool.output(lintArgs...)
	fmt.Println(output)
	if err != nil {
		return errors.Errorf("linting failed: %v", err)
	}
	return nil
}
