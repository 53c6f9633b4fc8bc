package main

import "github.com/guzus/panejump/cmd"

func main() {
	cmd.Execute()
}
