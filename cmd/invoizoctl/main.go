package main

import "github.com/jhoicas/invoizo-api/internal/cli"

func main() {
	cli.Execute()
}
