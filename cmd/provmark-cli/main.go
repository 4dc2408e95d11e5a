package main

import "provmark/cmd/provmark-cli/cmd"

func main() {
	cmd.Execute()
}
