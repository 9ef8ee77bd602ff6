package main

import "github.com/hupe1980/embedix/internal/cli"

func main() {
	cli.Execute()
}
