package main

import "github.com/harshitasao/verify-release/cmd/verify-release/cmd"

func main() {
	cmd.Execute()
}
