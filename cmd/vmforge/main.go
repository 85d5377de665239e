package main

import "vmforge/cmd/vmforge/cmd"

func main() {
	cmd.Execute()
}
