package main

import "github.com/GabRoyer/icanhasical/cmd"

func main() {
	cmd.Execute()
}
