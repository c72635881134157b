package info

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brimdata/takeio/cmd/takeio/root"
	"github.com/brimdata/takeio/pkg/storage"
	"github.com/mccanne/charm"
	"golang.org/x/sync/errgroup"
)

var Info = &charm.Spec{
	Name:  "info",
	Usage: "info uri [uri ...]",
	Short: "print the size of byte objects",
	Long: `
The info command prints the size in bytes of each object named by the
given URIs.  Objects are statted concurrently, so listing many remote
objects does not pay a round trip for each.
`,
	New: New,
}

func init() {
	root.Takeio.Add(Info)
}

type Command struct {
	*root.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	ctx, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) == 0 {
		return errors.New("info takes one or more object URIs")
	}
	engine := storage.NewLocalEngine()
	uris := make([]*storage.URI, len(args))
	sizes := make([]int64, len(args))
	group, ctx := errgroup.WithContext(ctx)
	for i, arg := range args {
		u, err := storage.ParseURI(arg)
		if err != nil {
			return err
		}
		uris[i] = u
		i := i
		group.Go(func() error {
			size, err := engine.Size(ctx, u)
			if errors.Is(err, storage.ErrNotFound) {
				sizes[i] = -1
				return nil
			}
			sizes[i] = size
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	for i, u := range uris {
		if sizes[i] < 0 {
			fmt.Fprintf(w, "%s\tnot found\n", u)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\n", u, sizes[i])
	}
	return w.Flush()
}
