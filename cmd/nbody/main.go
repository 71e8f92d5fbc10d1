// Command nbody parses arguments, loads configuration, and drives the sim
// package's tick loop with periodic logging. None of this scaffolding is
// part of the simulation core itself.
package main

import "github.com/katalvlaran/nbody/cmd/nbody/cmd"

func main() {
	cmd.Execute()
}
