package main

import "recast/cmd"

func main() {
	cmd.Execute()
}
