package main

import "github.com/gildedernacht/olymp/internal/cli"

func main() {
	cli.Execute()
}
