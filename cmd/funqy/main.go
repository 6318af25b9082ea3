package main

import "github.com/funvibe/funqy/pkg/cli"

func main() {
	cli.Run()
}
