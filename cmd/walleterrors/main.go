package main

import "github.com/tansive/walleterrors/internal/cli"

func main() {
	cli.Execute()
}
