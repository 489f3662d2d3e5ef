// Package cmd defines the cedar subcommands.
package cmd
