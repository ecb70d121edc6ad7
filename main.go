package main

import "uqbar/cli"

func main() {
	cli.Execute()
}
