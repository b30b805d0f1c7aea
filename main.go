package main

import "freight-audit/cmd"

func main() {
	cmd.Execute()
}
