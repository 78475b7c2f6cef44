package main

import (
	"ojtools/cmd/oj/commands"
)

func main() {
	commands.Execute()
}
