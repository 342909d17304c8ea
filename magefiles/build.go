// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the propai project using Mage.
//
// Usage:
//
//	mage build            Compile the propai binary to bin/
//	mage test:all         Run every test
//	mage test:race        Run every test with the race detector
//	mage test:mysql       Run the MySQL backend conformance suite
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
//	mage install          Install propai to GOPATH/bin
//	mage serve            Build and run the document store on a memory backend
//	mage stats            Print Go line counts per package
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "propai"
	binaryDir  = "bin"
	cmdDir     = "./cmd/propai"
)

// Build compiles the propai binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Serve builds the binary and runs the document store on a seeded memory
// backend.
func Serve() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"PROPAI_SEED": "true"},
		filepath.Join(binaryDir, binaryName), "--backend", "memory", "serve")
}
