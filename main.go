package main

import "github.com/tomos/cadence/internal/cli"

func main() {
	cli.Execute()
}
