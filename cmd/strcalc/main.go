package main

import "github.com/JonMunkholm/strcalc/internal/cli"

func main() {
	cli.Execute()
}
