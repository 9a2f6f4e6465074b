package main

import (
	"mirra/cmd"
)

func main() {
	cmd.Execute()
}
