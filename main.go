package main

import "github.com/tdavies-dev/gutenshad/cmd"

func main() {
	cmd.Execute()
}
