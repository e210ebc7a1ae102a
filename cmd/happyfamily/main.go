package main

import "github.com/happycyhe/Happyfamily-Lotto/internal/cli"

func main() {
	cli.Execute()
}
