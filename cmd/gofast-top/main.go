// Command gofast-top is a read-only terminal dashboard for a running
// gofastd instance, polling it over the same RESP2 wire protocol
// clients use.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	target := flag.String("target", "localhost:6379", "gofastd address to poll")
	flag.Parse()

	p := tea.NewProgram(newModel(*target))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gofast-top: %v\n", err)
		os.Exit(1)
	}
}
