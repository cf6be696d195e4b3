package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhi266raj/gridlayout/pkg/inspect"
)

const defaultAddr = "127.0.0.1:8475"

// serveCommand creates the serve command for running the layout inspector.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <preset.toml>",
		Short: "Serve the layout inspector over HTTP",
		Long: `Serve loads a preset, builds the layout, and exposes it read-only over
HTTP: GET /layout for the JSON snapshot, /layout.svg for a rendering,
/attributes?x=&y=&w=&h= for rect queries, and /sections/{index} for
per-section geometry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr string) error {
	engine, _, _, err := c.loadEngine(path)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           inspect.NewRouter(engine, inspect.Options{Logger: c.Logger}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	c.Logger.Info("inspector listening", "addr", addr)
	printInfo("Inspector running, ctrl+c to stop")
	printLink("http://" + addr + "/layout")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
