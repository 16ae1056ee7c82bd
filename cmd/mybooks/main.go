package main

import "github.com/mybooks-app/mybooks/cli"

func main() {
	cli.Execute()
}
