package main

import "github.com/papapumpkin/dexline/cmd"

func main() {
	cmd.Execute()
}
