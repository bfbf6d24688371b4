package main

import "github.com/theirongolddev/kcaltank/cmd"

func main() {
	cmd.Execute()
}
