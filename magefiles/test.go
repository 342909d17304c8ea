// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"errors"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// MySQL runs the MySQL backend conformance suite against PROPAI_MYSQL_DSN.
func (Test) MySQL() error {
	if os.Getenv("PROPAI_MYSQL_DSN") == "" {
		return errors.New("PROPAI_MYSQL_DSN is not set")
	}
	return sh.RunV(binGo, "test", "-v", "-count=1", "./internal/gormstore/...")
}
