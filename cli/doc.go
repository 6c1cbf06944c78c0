// Package cli contains the command line interface for varsub.
//
// # Usage
//
//	varsub [flags] [resolve] [template ...]
//	varsub scan [--format text|json|yaml] [template ...]
//	varsub init [--force]
//
// Resolve is the default command. Templates are read from the arguments or,
// when none are given and stdin is not a terminal, one per line of stdin:
//
//	varsub -D user=ardnew '/home/${user}/bin'
//	env | cut -d= -f1 | sed 's/^/$/' | varsub --env --strict
//	varsub -f scope.yaml --undefined suffix 'name${suffix}'
//
// A scope file is a YAML mapping of variable names to scalar values; a null
// value declares the name without a value. With --strict, references to
// undeclared variables fail and the closest known names are suggested.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory, for example $XDG_CONFIG_HOME/varsub/config.yaml. The init
// command writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o varsub .
//
// The tagged build adds these flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory in the user cache directory)
package cli
