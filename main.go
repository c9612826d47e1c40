package main

import "github.com/1mikegrn/michaelgreen.dev/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
