package main

import "github.com/ib-77/unexceptional/internal/cli"

func main() {
	cli.Execute()
}
