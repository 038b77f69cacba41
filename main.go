package main

import "github.com/safespeak/safespeak/cmd"

func main() {
	cmd.Execute()
}
