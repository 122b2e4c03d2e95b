// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for bytelens.
//
// This package implements the Cobra command hierarchy for the bytelens CLI,
// including the root command and subcommands for classpath inspection,
// resource resolution, class dumping, and configuration management.
package cmd
