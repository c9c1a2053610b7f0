package main

import "cryptomobile/internal/cli"

func main() {
	cli.Execute()
}
