package main

import (
	"github.com/candela-labs/scholar-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
