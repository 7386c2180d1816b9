package main

import "github.com/theirongolddev/coffer/cmd"

func main() {
	cmd.Execute()
}
