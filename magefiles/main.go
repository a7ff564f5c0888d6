//go:build mage

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// BootstrapTools installs all tools needed to build and test bqfirestoresync.
// For the list of tools this will install, see tools.yaml in the root directory
func BootstrapTools() error {
	mg.Deps(goCheck)
	type ToolsList struct {
		Tools []string
	}

	tools := &ToolsList{}
	err := readYaml("tools.yaml", tools)
	if err != nil {
		return err
	}

	for _, name := range tools.Tools {
		err := goTool.run("install", name)
		if err != nil {
			return err
		}
	}
	return nil
}

// Check dependent tools are present and the correct version.
func CheckDeps() error {
	checks := []struct {
		name  string
		check func() error
	}{
		{"docker", dockerCheck},
		{"go", goCheck},
	}
	failures := false
	for _, check := range checks {
		fmt.Printf("Checking %s... ", check.name)
		if err := check.check(); err != nil {
			fmt.Printf("FAILED\nReason: %v\n", err)
			failures = true
		} else {
			fmt.Println("PASSED")
		}
	}
	if failures {
		return errors.New("check(s) failed.")
	}
	return nil
}

// Removes build output and test reports.
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "dist", "test_reports"} {
		os.RemoveAll(path)
	}
}

// Regenerates the mocks used by the tests.
func Mocks() error {
	mg.Deps(goCheck)
	return goTool.run("generate", "./internal/syncer/mocks/...")
}

// Build compiles the bqfirestoresync binary into ./bin.
func Build() error {
	mg.Deps(goCheck)
	timeTaken := time.Now()
	err := goTool.run("build", "-o", binaryWithExt("bin/bqfirestoresync"), "./cmd/bqfirestoresync")
	if err != nil {
		return err
	}
	fmt.Println("Time to build:", time.Since(timeTaken))
	return nil
}

// readYaml reads a yaml file and unmarshalls the result into out
func readYaml(filename string, out interface{}) error {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(bytes, out)
	return err
}
