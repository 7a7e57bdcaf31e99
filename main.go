package main

import "vmops/cmd"

func main() {
	cmd.Execute()
}
