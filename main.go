package main

import "github.com/nathanhack/squareparity/cmd"

func main() {
	cmd.Execute()
}
