package main

import "github.com/julienpequegnot/slopmon/cmd"

func main() {
	cmd.Execute()
}
