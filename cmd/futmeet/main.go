package main

import (
	"github.com/cmarcal/futmeet-sub000/internal/cli"
)

func main() {
	cli.Execute()
}
