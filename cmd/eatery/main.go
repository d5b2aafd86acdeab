package main

import (
	"github.com/jkwan-hk/eatery/internal/cli"
)

func main() {
	cli.Execute()
}
