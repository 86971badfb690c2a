package main

import "packetgen/cmd"

func main() {
	cmd.Execute()
}
