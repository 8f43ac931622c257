// Command playground shows voice agent conversations as chat bubbles in the terminal.
package main

import "github.com/diogo/playground/internal/commands"

func main() {
	commands.Execute()
}
