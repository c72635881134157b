package root

import (
	"flag"

	"github.com/brimdata/takeio/cli"
	"github.com/mccanne/charm"
)

var Takeio = &charm.Spec{
	Name:  "takeio",
	Usage: "takeio <command> [options] [arguments...]",
	Short: "read and serve windows of byte objects",
	Long: `
The takeio command reads whole or windowed ranges of byte objects
addressed by URI on the file system, on stdio, or behind http or s3.
A window restricts reading to a fixed span of an object, so a consumer
handed a window can never wander outside the bytes it was given.

The cut command copies windows of an object to an output.  The info
command prints object sizes.  The serve command runs a daemon that
serves object windows over HTTP.
`,
	New: New,
}

func init() {
	Takeio.Add(charm.Help)
}

type Command struct {
	charm.Command
	cli.Flags
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.SetFlags(f)
	return c, nil
}

func (c *Command) Run(args []string) error {
	_, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	return Takeio.Exec(c, []string{"help"})
}
