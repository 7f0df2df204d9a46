package main

import "github.com/Shuaib-8/Travel-Copilot/cmd"

func main() {
	cmd.Execute()
}
