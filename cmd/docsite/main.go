// Command docsite serves and maintains the multilingual documentation site.
package main

import (
	"context"
	"os"

	"github.com/sysmanage/docsite/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
