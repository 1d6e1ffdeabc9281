package main

import "vdash/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
