package main

import "github.com/crimson-sun/aulos/internal/cmd"

func main() {
	cmd.Execute()
}
