package main

import "github/chapool/sol-explorer/cmd"

func main() {
	cmd.Execute()
}
