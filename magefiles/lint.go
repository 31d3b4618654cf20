//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import "github.com/magefile/mage/sh"

const binLint = "golangci-lint"

// lintPackages are the module's own packages; magefiles build under mage.
var lintPackages = []string{"./cmd/...", "./internal/...", "./pkg/...", "./tests/..."}

// Lint runs go vet and then golangci-lint over the module's packages.
func Lint() error {
	if err := sh.RunV(binGo, append([]string{"vet"}, lintPackages...)...); err != nil {
		return err
	}
	return sh.RunV(binLint, append([]string{"run"}, lintPackages...)...)
}
