package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/internal/remote"
	"github.com/mesh-intelligence/propai/internal/stats"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// analytics produces the aggregate views. Remote stores compute them
// server-side; every other backend reduces locally.
type analytics interface {
	UserStats(ctx context.Context, userID string) (types.UserStats, error)
	PlatformStats(ctx context.Context) (types.PlatformStats, error)
	UserActivity(ctx context.Context, userID string) (types.UserActivity, error)
	PropertyAnalytics(ctx context.Context, propertyID string) (types.PropertyAnalytics, error)
}

type localAnalytics struct {
	svc types.Service
}

func (a localAnalytics) UserStats(ctx context.Context, userID string) (types.UserStats, error) {
	return stats.UserOf(ctx, a.svc, userID)
}

func (a localAnalytics) PlatformStats(ctx context.Context) (types.PlatformStats, error) {
	return stats.PlatformOf(ctx, a.svc)
}

func (a localAnalytics) UserActivity(ctx context.Context, userID string) (types.UserActivity, error) {
	return stats.ActivityOf(ctx, a.svc, userID)
}

func (a localAnalytics) PropertyAnalytics(ctx context.Context, propertyID string) (types.PropertyAnalytics, error) {
	return stats.PropertyOf(ctx, a.svc, propertyID)
}

func analyticsFor(svc types.Service) analytics {
	if rb, ok := svc.(*remote.Backend); ok {
		return rb.Analytics()
	}
	return localAnalytics{svc: svc}
}

func newStatsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show user, platform and property analytics",
	}

	// run wraps a loader into a command body that prints its result.
	run := func(load func(ctx context.Context, a analytics, args []string) (any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				v, err := load(ctx, analyticsFor(svc), args)
				if err != nil {
					return err
				}
				return printJSON(cmd, v)
			})
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "user <user-id>",
			Short: "Collection and message counts for one user",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, a analytics, args []string) (any, error) {
				return a.UserStats(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "platform",
			Short: "Entity totals across the store",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a analytics, args []string) (any, error) {
				return a.PlatformStats(ctx)
			}),
		},
		&cobra.Command{
			Use:   "activity <user-id>",
			Short: "A user's newest messages and collections",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, a analytics, args []string) (any, error) {
				return a.UserActivity(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "property <property-id>",
			Short: "How often a property was saved to collections",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, a analytics, args []string) (any, error) {
				return a.PropertyAnalytics(ctx, args[0])
			}),
		},
	)
	return cmd
}
