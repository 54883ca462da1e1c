package main

import "github.com/deepguard/deepguard/pkg/dg-cli/cmd"

func main() {
	cmd.Execute()
}
