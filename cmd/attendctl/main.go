package main

import "go.workpoint.io/attend/cmd/attendctl/cmd"

func main() {
	cmd.Execute()
}
