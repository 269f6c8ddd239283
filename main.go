package main

import "github.com/success-cli/success/cmd"

func main() {
	cmd.Execute()
}
