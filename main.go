package main

import "github.com/gaurav-prasanna/dayscribe/cmd"

func main() {
	cmd.Execute()
}
