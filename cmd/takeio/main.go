package main

import (
	"fmt"
	"os"

	_ "github.com/brimdata/takeio/cmd/takeio/cut"
	_ "github.com/brimdata/takeio/cmd/takeio/info"
	"github.com/brimdata/takeio/cmd/takeio/root"
	_ "github.com/brimdata/takeio/cmd/takeio/serve"
	_ "github.com/brimdata/takeio/cmd/takeio/version"
)

func main() {
	if _, err := root.Takeio.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
