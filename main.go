package main

import "github.com/xvierd/corgi-cli/cmd"

func main() {
	cmd.Execute()
}
