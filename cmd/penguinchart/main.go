// Command penguinchart renders the penguin bubble scatter as standalone HTML
// pages, one per chart back end.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "penguinchart:", err)
		}
		os.Exit(1)
	}
}
