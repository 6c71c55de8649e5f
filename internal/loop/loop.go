// Package loop wires a game session to a terminal: the server steps the
// session at a fixed tick rate while the client renders and reads keys.
package loop

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/loop/client"
	"github.com/tomz197/galactic/internal/loop/server"
)

// Run plays one session on the given terminal streams. Blocks until the
// player quits, the connection drops or ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, deps game.Deps, opts client.ClientOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := server.NewHost(game.New(deps))
	c := client.NewClient(host, bufio.NewReader(r), w, opts)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		host.Run(ctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return c.Run()
	})
	return g.Wait()
}
