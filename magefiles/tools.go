//go:build mage

package main

import (
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

// tool is an external binary the targets shell out to, together with the versions they work with.
type tool struct {
	binary      string
	versionArgs []string
	// position of the version number among the whitespace separated words the version command prints
	versionField int
	constraint   string
}

var (
	goTool = tool{
		binary:       "go",
		versionArgs:  []string{"version"},
		versionField: 2,
		constraint:   ">= 1.21.0",
	}
	dockerTool = tool{
		binary:       "docker",
		versionArgs:  []string{"--version"},
		versionField: 2,
		constraint:   ">= 19.0.0",
	}
	golangciLintTool = tool{
		binary:       "golangci-lint",
		versionArgs:  []string{"--version"},
		versionField: 3,
		constraint:   ">= 1.52.0",
	}
)

func (t tool) output(args ...string) (string, error) {
	return sh.Output(binaryWithExt(t.binary), args...)
}

func (t tool) run(args ...string) error {
	return sh.RunV(binaryWithExt(t.binary), args...)
}

func (t tool) version() (*semver.Version, error) {
	output, err := t.output(t.versionArgs...)
	if err != nil {
		return nil, errors.Errorf("error running %s version cmd: %v", t.binary, err)
	}
	fields := strings.Fields(output)
	if len(fields) <= t.versionField {
		return nil, errors.Errorf("unexpected %s version cmd output: %s", t.binary, output)
	}
	// printed as go1.21.0, v1.52.2 or 24.0.5, depending on the tool
	raw := strings.TrimLeft(strings.TrimRight(fields[t.versionField], ","), "gov")
	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, errors.Errorf("error parsing %s version %q: %v", t.binary, raw, err)
	}
	return version, nil
}

func (t tool) check() error {
	version, err := t.version()
	if err != nil {
		return err
	}
	constraint, err := semver.NewConstraint(t.constraint)
	if err != nil {
		return errors.Errorf("error parsing constraint: %v", err)
	}
	if !constraint.Check(version) {
		return errors.Errorf("found %s version %v but it failed constraint %v", t.binary, version, constraint)
	}
	return nil
}

// mage tells dependencies apart by function name, so every check needs a named function of its own.

func goCheck() error {
	return goTool.check()
}

func dockerCheck() error {
	return dockerTool.check()
}

func golangciLintCheck() error {
	return golangciLintTool.check()
}
