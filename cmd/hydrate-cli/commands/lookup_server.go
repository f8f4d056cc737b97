package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-hydrate/components/lookup"
)

type serveFlags struct {
	addr     string
	names    string
	basePath string
}

func lookupServerCmd() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "lookup-server",
		Short: "Serve the account lookup endpoint backed by a names file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveLookup(ctx, flags, nil)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&flags.names, "names", "", "file with one taken account name per line")
	cmd.Flags().StringVar(&flags.basePath, "base-path", "", "prefix for the lookup route")
	return cmd
}

// serveLookup runs the server until ctx is done. When ready is non-nil it
// receives the bound address once the listener is open.
func serveLookup(ctx context.Context, flags serveFlags, ready chan<- string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dir := lookup.NewNameSet()
	if flags.names != "" {
		f, err := os.Open(flags.names)
		if err != nil {
			return fmt.Errorf("lookup-server: open names: %w", err)
		}
		dir, err = lookup.ReadNames(f)
		_ = f.Close()
		if err != nil {
			return err
		}
	}

	component := lookup.New(lookup.WithDirectory(dir))
	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux, flags.basePath)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", flags.addr)
	if err != nil {
		return fmt.Errorf("lookup-server: listen: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	logger.Info("lookup server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("route", pattern),
		zap.Int("names", dir.Len()),
	)
	if ready != nil {
		ready <- ln.Addr().String()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("lookup-server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
