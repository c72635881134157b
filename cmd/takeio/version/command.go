package version

import (
	"flag"
	"fmt"

	"github.com/brimdata/takeio/cli"
	"github.com/brimdata/takeio/cmd/takeio/root"
	"github.com/mccanne/charm"
)

var Version = &charm.Spec{
	Name:  "version",
	Usage: "version",
	Short: "print version information",
	New:   New,
}

func init() {
	root.Takeio.Add(Version)
}

type Command struct {
	*root.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	_, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	fmt.Println(cli.Version())
	return nil
}
