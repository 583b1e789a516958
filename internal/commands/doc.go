// Package commands implements the ezcfg command line.
package commands
