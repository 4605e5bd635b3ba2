package main

import (
	"github.com/cardtable/eights/internal/cli"
)

func main() {
	cli.Execute()
}
