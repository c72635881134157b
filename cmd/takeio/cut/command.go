package cut

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brimdata/takeio/cmd/takeio/root"
	"github.com/brimdata/takeio/pkg/ctxio"
	"github.com/brimdata/takeio/pkg/slicer"
	"github.com/brimdata/takeio/pkg/storage"
	"github.com/mccanne/charm"
)

var Cut = &charm.Spec{
	Name:  "cut",
	Usage: "cut [options] uri",
	Short: "copy windows of a byte object to an output",
	Long: `
The cut command copies a window of the object at uri to the output.
The object is read through a bounded window, so only the selected
bytes are ever consumed no matter how the underlying storage behaves.

A single window is given with -from and -for.  Multiple windows are
given with -cuts as comma-separated offset:length pairs and are
emitted in the order given, which need not be ascending.
`,
	New: New,
}

func init() {
	root.Takeio.Add(Cut)
}

type Command struct {
	*root.Command
	from   int64
	length int64
	cuts   string
	output string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.Int64Var(&c.from, "from", 0, "byte offset of the window start")
	f.Int64Var(&c.length, "for", -1, "byte length of the window, or -1 for the rest of the object")
	f.StringVar(&c.cuts, "cuts", "", "comma-separated offset:length windows to cut in the order given")
	f.StringVar(&c.output, "o", "stdout", "URI to write the cut bytes to")
	return c, nil
}

func (c *Command) Run(args []string) error {
	ctx, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) != 1 {
		return errors.New("cut takes a single object URI")
	}
	uri, err := storage.ParseURI(args[0])
	if err != nil {
		return err
	}
	engine := storage.NewLocalEngine()
	var reader io.Reader
	var closer io.Closer
	if c.cuts != "" {
		if c.from != 0 || c.length != -1 {
			return errors.New("-from and -for cannot be used with -cuts")
		}
		slices, err := parseCuts(c.cuts)
		if err != nil {
			return err
		}
		r, err := engine.Get(ctx, uri)
		if err != nil {
			return err
		}
		sliced, err := slicer.NewReader(r, slices)
		if err != nil {
			r.Close()
			return err
		}
		reader, closer = sliced, r
	} else {
		if c.from < 0 {
			return errors.New("-from cannot be negative")
		}
		length := c.length
		if length < 0 {
			size, err := engine.Size(ctx, uri)
			if err != nil {
				return err
			}
			if c.from > size {
				return fmt.Errorf("window start %d beyond object of size %d", c.from, size)
			}
			length = size - c.from
		}
		r, err := storage.NewRangeReader(ctx, engine, uri, uint64(c.from), uint64(length))
		if err != nil {
			return err
		}
		reader, closer = r, r
	}
	defer closer.Close()
	out, err := storage.ParseURI(c.output)
	if err != nil {
		return err
	}
	w, err := engine.Put(ctx, out)
	if err != nil {
		return err
	}
	_, err = ctxio.Copy(ctx, w, reader)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

func parseCuts(s string) ([]slicer.Slice, error) {
	var slices []slicer.Slice
	for _, cut := range strings.Split(s, ",") {
		a := strings.SplitN(cut, ":", 2)
		if len(a) != 2 {
			return nil, fmt.Errorf("bad cut %q: expected offset:length", cut)
		}
		offset, err := strconv.ParseUint(a[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad cut %q: %w", cut, err)
		}
		length, err := strconv.ParseUint(a[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad cut %q: %w", cut, err)
		}
		slices = append(slices, slicer.Slice{Offset: offset, Length: length})
	}
	return slices, nil
}
