package main

import (
	"fmt"
	"omweso/ui"
	"os"
)

func main() {
	if err := ui.RunOmweso(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
