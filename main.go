package main

import (
	cmd "github.com/easel-agent/cli/cmd"
)

func main() {
	cmd.Execute()
}
