package main

import "github.com/saikamaik/airline-sub000/internal/commands"

func main() {
	commands.Execute()
}
