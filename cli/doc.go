// Package cli implements the cedar command-line interface: flag parsing,
// logger configuration, optional profiling, and dispatch to the commands in
// [github.com/cedarparse/cedar/cli/cmd].
package cli
