package main

import (
	"github.com/xipchat/cli/cmd"
)

func main() {
	cmd.Execute()
}
