package main

import "github.com/pcollins/matchday/internal/cli"

func main() {
	cli.Execute()
}
