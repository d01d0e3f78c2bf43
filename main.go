package main

import "github.com/abhisheksh99/Food-Delivery-App-v2/commands"

func main() {
	commands.Execute()
}
