package main

import (
	"github.com/mquinn/cstyle/internal/cli"
)

func main() {
	cli.Execute()
}
