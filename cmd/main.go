package main

import "github.com/corray333/swiftserve/internal/cli"

func main() {
	cli.Execute()
}
