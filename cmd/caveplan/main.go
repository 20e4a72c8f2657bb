package main

import (
	"github.com/andrescamacho/caveplan-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
