package serve

import (
	"flag"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/brimdata/takeio/cli"
	"github.com/brimdata/takeio/cli/cacheflags"
	"github.com/brimdata/takeio/cli/logflags"
	"github.com/brimdata/takeio/cmd/takeio/root"
	"github.com/brimdata/takeio/pkg/fs"
	"github.com/brimdata/takeio/pkg/httpd"
	"github.com/brimdata/takeio/pkg/rlimit"
	"github.com/brimdata/takeio/pkg/storage/cache"
	"github.com/brimdata/takeio/service"
	"github.com/brimdata/takeio/service/logger"
	"github.com/mccanne/charm"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var Serve = &charm.Spec{
	Name:  "serve",
	Usage: "serve [options]",
	Short: "serve windows of byte objects over HTTP",
	Long: `
The serve command launches a daemon that serves whole or windowed
reads of the byte objects under its root over HTTP.  It listens on
the interface and port given by -l and serves object bytes on
GET /object/{path} and object metadata on GET /stat/{path}.  A
request selects a window of an object with the offset and length
query parameters or with a Range header.

The -log.level option controls log verbosity.  Available levels,
ordered from most to least verbose, are debug, info (the default),
warn, error, dpanic, panic, and fatal.
`,
	New: New,
}

func init() {
	root.Takeio.Add(Serve)
}

type Command struct {
	*root.Command
	conf       service.Config
	cacheflags cacheflags.Flags
	logflags   logflags.Flags
	listenAddr string
	configfile string
	portFile   string
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	c.conf.Version = cli.Version()
	c.cacheflags.SetFlags(f)
	c.logflags.SetFlags(f)
	f.Func("cors.origin", "CORS allowed origin (may be repeated)", func(s string) error {
		c.conf.CORSAllowedOrigins = append(c.conf.CORSAllowedOrigins, s)
		return nil
	})
	f.StringVar(&c.conf.Root, "data", ".", "URI of the object root to serve")
	f.StringVar(&c.listenAddr, "l", ":9867", "[addr]:port to listen on")
	f.StringVar(&c.configfile, "config", "", "path to a YAML config file")
	f.StringVar(&c.portFile, "portfile", "", "write listen port to file")
	return c, nil
}

func (c *Command) Run(args []string) error {
	// Don't include SIGPIPE here or else a write to a closed socket (i.e.,
	// a broken network connection) will cancel the context on Linux.
	ctx, cleanup, err := c.InitWithSignals(nil, syscall.SIGINT, syscall.SIGTERM)
	if err != nil {
		return err
	}
	defer cleanup()
	if err := c.loadConfigFile(); err != nil {
		return err
	}
	logger, err := c.logflags.Open()
	if err != nil {
		return err
	}
	defer logger.Sync()
	c.conf.Logger = logger
	c.conf.Cache = c.cacheflags.Config
	openFilesLimit, err := rlimit.RaiseOpenFilesLimit()
	if err != nil {
		logger.Warn("Raising open files limit failed", zap.Error(err))
	}
	core, err := service.NewCore(ctx, c.conf)
	if err != nil {
		return err
	}
	defer core.Shutdown()
	logger.Info("Starting",
		zap.String("data", c.conf.Root),
		zap.Int("open_files_limit", openFilesLimit),
	)
	srv := httpd.New(c.listenAddr, core)
	srv.SetLogger(logger.Named("httpd"))
	if err := srv.Start(ctx); err != nil {
		return err
	}
	if c.portFile != "" {
		if err := c.writePortFile(srv.Addr()); err != nil {
			return err
		}
	}
	return srv.Wait()
}

// Example config file:
//
// logger:
//   type: waterfall
//   children:
//   - path: ./access.log
//     name: "http.access"
//     mode: truncate
//   - path: stderr
// cache:
//   kind: local
//   local_cache_size: 128
// root: /data/objects

func (c *Command) loadConfigFile() error {
	if c.configfile == "" {
		return nil
	}
	conf := &struct {
		Logger *logger.Config `yaml:"logger"`
		Cache  *cache.Config  `yaml:"cache"`
		Root   string         `yaml:"root"`
	}{}
	b, err := os.ReadFile(c.configfile)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, conf); err != nil {
		return err
	}
	if conf.Logger != nil {
		c.logflags.Config = *conf.Logger
	}
	if conf.Cache != nil {
		c.cacheflags.Config = *conf.Cache
	}
	if conf.Root != "" {
		c.conf.Root = conf.Root
	}
	return nil
}

func (c *Command) writePortFile(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	return fs.ReplaceFile(c.portFile, 0644, func(w io.Writer) error {
		_, err := w.Write([]byte(port))
		return err
	})
}
