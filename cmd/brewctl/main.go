package main

import "github.com/mcoot/brewduel/internal/cli"

func main() {
	cli.Execute()
}
