// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides comprehensive benchmarks for PGO profile generation.
// These benchmarks cover all hot paths in the bytelens codebase:
//   - CUE configuration validation
//   - Classpath manifest parsing
//   - Archive opening and class loading
//   - Multi-entry resource resolution
//   - Class file header parsing
//
// To generate a PGO profile, run:
//
//	go test -run='^$' -bench=. -cpuprofile=default.pgo ./internal/benchmark/
package benchmark
