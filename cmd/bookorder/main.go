package main

import (
	"context"
	"os"

	"github.com/in1011558-byte/book-order-system/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
