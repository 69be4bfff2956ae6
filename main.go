package main

import "github.com/sockomode/symrel/cmd"

func main() {
	cmd.Main()
}
