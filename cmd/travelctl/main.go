package main

import "zervitravel/cmd/travelctl/cmd"

func main() {
	cmd.Execute()
}
