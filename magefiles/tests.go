//go:build mage

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	firestoreEmulatorContainer = "firestore-emulator"
	firestoreEmulatorHost      = "localhost:8200"
	firestoreEmulatorImage     = "gcr.io/google.com/cloudsdktool/google-cloud-cli:emulators"
)

var Gotestsum string

var LocalBin = filepath.Join(os.Getenv("PWD"), "/bin")

func makeLocalBin() error {
	if _, err := os.Stat(LocalBin); os.IsNotExist(err) {
		err = os.MkdirAll(LocalBin, os.ModePerm)
		if err != nil {
			return err
		}
	}
	return nil
}

// Gotestsum downloads gotestsum locally if necessary
func gotestsum() error {
	mg.Deps(makeLocalBin)
	Gotestsum = filepath.Join(LocalBin, "/gotestsum")

	if _, err := os.Stat(Gotestsum); os.IsNotExist(err) {
		fmt.Println(Gotestsum)
		cmd := exec.Command("go", "install", "gotest.tools/gotestsum@v1.8.2")
		cmd.Env = append(os.Environ(), "GOBIN="+LocalBin)
		return cmd.Run()
	}
	return nil
}

// Starts a Firestore emulator in docker for the integration tests.
func FirestoreEmulator() error {
	mg.Deps(dockerCheck)
	return dockerTool.run("run", "-d", "--name="+firestoreEmulatorContainer, "-p=8200:8200", firestoreEmulatorImage,
		"gcloud", "emulators", "firestore", "start", "--host-port=0.0.0.0:8200")
}

// Removes the Firestore emulator container.
func FirestoreEmulatorTeardown() error {
	mg.Deps(dockerCheck)
	return dockerTool.run("rm", "-f", firestoreEmulatorContainer)
}

// Tests is a mage target that runs the tests, including the Firestore integration tests, and generates coverage reports.
func Tests() (err error) {
	mg.Deps(gotestsum)
	mg.Deps(FirestoreEmulator)
	defer func() {
		dockerErr := FirestoreEmulatorTeardown()
		if dockerErr != nil {
			if err == nil {
				err = dockerErr
			} else {
				err = fmt.Errorf("%w; %s", err, dockerErr.Error())
			}
		}
	}()

	if err = sh.Run("sleep", "5"); err != nil {
		return err
	}
	if err = os.MkdirAll("test_reports", os.ModePerm); err != nil {
		return err
	}

	os.Setenv("FIRESTORE_EMULATOR_HOST", firestoreEmulatorHost)
	defer os.Unsetenv("FIRESTORE_EMULATOR_HOST")

	if err = runtest("internal_coverage.xml", "internal.txt", "./internal/..."); err != nil {
		return err
	}
	return runtest("cmd_coverage.xml", "cmd.txt", "./cmd/...")
}

// UnitTests runs the tests that need no emulator.
func UnitTests() error {
	mg.Deps(gotestsum)
	if err := os.MkdirAll("test_reports", os.ModePerm); err != nil {
		return err
	}
	return runtest("", "unit.txt", "./...")
}

func runtest(coverageFileName, outputFileName string, directories ...string) error {
	args := []string{"--", "-v"}
	if coverageFileName != "" {
		args = append(args, "-coverprofile", filepath.Join("test_reports", coverageFileName))
	}
	args = append(args, directories...)

	cmd := exec.Command(Gotestsum, args...)

	file, err := os.Create(filepath.Join("test_reports", outputFileName))
	if err != nil {
		return err
	}
	defer file.Close()

	cmd.Stdout = io.MultiWriter(os.Stdout, file)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
