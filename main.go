package main

import "jetup/cmd"

func main() {
	cmd.Execute()
}
