package main

import "github.com/stuarthighley/wadcat/cmd/wadcat/cmd"

func main() {
	cmd.Execute()
}
