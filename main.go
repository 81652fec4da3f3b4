package main

import "card-catalog/cmd"

func main() {
	cmd.Execute()
}
