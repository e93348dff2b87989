// Package main is the entry point for the forgeguard CLI.
package main

import "forgeguard.dev/pkg/forgeguard/cmd"

func main() {
	cmd.Execute()
}
