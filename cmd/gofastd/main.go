package main

import "gofast/internal/cmd"

func main() {
	cmd.Execute()
}
