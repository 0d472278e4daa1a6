package main

import "tally/cmd/tl/root"

func main() {
	root.Execute()
}
