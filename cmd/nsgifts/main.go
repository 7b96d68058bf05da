package main

import "github.com/lfyzer/nsgifts-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
