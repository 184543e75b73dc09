package main

import "github.com/mcoot/seabattle-go/internal/cli"

func main() {
	cli.Execute()
}
