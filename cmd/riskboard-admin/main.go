package main

import (
	"github.com/mspsec/riskboard/cmd/cli"
)

func main() {
	cli.Execute()
}
