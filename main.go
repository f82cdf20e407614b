package main

import "github.com/Nullybeats/tampamixtape/cmd"

func main() {
	cmd.Execute()
}
