package main

import "farmbot/cli"

func main() {
	cli.Execute()
}
