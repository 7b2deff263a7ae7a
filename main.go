package main

import "github.com/doomtech/zdbsp/cmd"

func main() {
	cmd.Execute()
}
