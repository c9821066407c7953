// Package rfi holds the configuration, error taxonomy and convergence loop
// shared by the RFI flagging engine.
//
// The engine itself lives in sub-packages:
//
//   - [github.com/cwbudde/algo-rfi/rfi/flag]: frequency, time and variance flaggers
//   - [github.com/cwbudde/algo-rfi/rfi/foreground]: sub-band foreground subtraction
//   - [github.com/cwbudde/algo-rfi/rfi/pipeline]: the escalating orchestrator
//
// Every component receives an immutable [Config] by value; nothing reads
// package-level state, so independent grids may be processed concurrently.
//
// # Configuration
//
//	cfg := rfi.NewConfig(rfi.WithFreqSigma(5), rfi.WithMaxIterations(30))
//	if err := cfg.Validate(); err != nil { ... }
//
// or from YAML using the keys of the original pipeline:
//
//	cfg, err := rfi.LoadConfigFile("flag.yaml")
package rfi
