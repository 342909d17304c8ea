package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/internal/remote"
	"github.com/mesh-intelligence/propai/pkg/store"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// serviceFunc is the body of a command that needs an attached service.
type serviceFunc func(ctx context.Context, svc types.Service) error

// withService opens the configured backend, runs fn, and detaches.
func (o *options) withService(cmd *cobra.Command, fn serviceFunc) error {
	s, err := o.resolve()
	if err != nil {
		return err
	}
	return o.withSettings(cmd, s, fn)
}

// withSettings is withService for already resolved settings.
func (o *options) withSettings(cmd *cobra.Command, s *settings, fn serviceFunc) error {
	if err := s.service.Validate(); err != nil {
		return err
	}
	svc, err := store.Open(s.service)
	if err != nil {
		if errors.Is(err, remote.ErrEndpointMissing) {
			return err
		}
		return &sysError{err: err}
	}
	defer func() {
		if err := svc.Detach(); err != nil {
			o.logger.Warn("detach failed", "error", err)
		}
	}()
	return fn(cmd.Context(), svc)
}

// printJSON writes v to the command output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// printFound prints e, or a not-found error when e is nil.
func printFound[E any](cmd *cobra.Command, noun, id string, e *E, err error) error {
	if err != nil {
		return err
	}
	if e == nil {
		return notFound(noun, id)
	}
	return printJSON(cmd, e)
}

// decodeInput unmarshals the --data flag into v. "-" reads standard input
// and "@path" reads a file.
func decodeInput(cmd *cobra.Command, data string, v any) error {
	var raw []byte
	switch {
	case data == "":
		return fmt.Errorf("%w: --data is required", types.ErrInvalidData)
	case data == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return systemError("read stdin: %w", err)
		}
		raw = b
	case data[0] == '@':
		b, err := os.ReadFile(data[1:])
		if err != nil {
			return systemError("read %s: %w", data[1:], err)
		}
		raw = b
	default:
		raw = []byte(data)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return nil
}

// addDataFlag registers the JSON input flag on cmd.
func addDataFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "data", "", `JSON body, "-" for stdin or "@file"`)
}
