package main

import "github.com/rozeraf/mkvenv/src/cmd"

func main() {
	cmd.Execute()
}
