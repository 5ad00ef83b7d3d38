package main

import "pfeifer.dev/scurve/cli"

func main() {
	cli.Handle()
}
