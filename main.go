package main

import (
	"github.com/recall-labs/recall-cli/internal/adapters/driving/cli"
)

func main() {
	cli.ExecuteOrExit()
}
