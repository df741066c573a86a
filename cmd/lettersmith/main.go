package main

import "github.com/lettersmith/lettersmith/cmd/lettersmith/cli"

func main() {
	cli.Execute()
}
