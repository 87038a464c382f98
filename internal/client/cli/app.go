package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/urfave/cli/v2"
)

// Dialer opens a client connected to addr.
type Dialer func(addr string) (client.Client, error)

type runner struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	dial   Dialer
	cfg    *config.Config
}

// NewApp builds the CLI application. in and out replace stdin and stdout,
// dial is used by every command to reach the server.
func NewApp(in io.Reader, out io.Writer, dial Dialer) *cli.App {
	r := &runner{in: in, reader: bufio.NewReader(in), out: out, dial: dial}

	return &cli.App{
		Name:      "gophauth",
		Usage:     "register, log in and inspect accounts on a gophauth server",
		Reader:    in,
		Writer:    out,
		ErrWriter: out,
		Flags:     globalFlags(),
		Before:    r.loadConfig,
		Commands: []*cli.Command{
			r.registerCommand(),
			r.loginCommand(),
			r.profileCommand(),
			r.adminCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Usage:   "gRPC address of the server (host:port)",
			EnvVars: []string{"GOPHAUTH_ADDR"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a JSON config file",
		},
	}
}

// loadConfig resolves defaults, then the JSON file, then --addr.
func (r *runner) loadConfig(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("addr") {
		cfg.ServerEndpointAddr = c.String("addr")
	}
	r.cfg = cfg
	return nil
}

// call dials the server, runs fn under the request timeout and closes the
// connection afterwards.
func (r *runner) call(c *cli.Context, fn func(ctx context.Context, cl client.Client) error) error {
	cl, err := r.dial(r.cfg.ServerEndpointAddr)
	if err != nil {
		return err
	}
	defer cl.Close()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if r.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.RequestTimeout)
		defer cancel()
	}

	return fn(ctx, cl)
}
