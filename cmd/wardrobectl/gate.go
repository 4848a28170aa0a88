package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/wardrobe-api/internal/config"
	"github.com/redmonkez12/wardrobe-api/internal/database"
	"github.com/redmonkez12/wardrobe-api/internal/gate"
	"github.com/redmonkez12/wardrobe-api/internal/onboarding"
	"github.com/redmonkez12/wardrobe-api/internal/user"
)

const commandTimeout = 30 * time.Second

type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// backend is the slice of the API wiring the inspection commands need
type backend struct {
	users      userFinder
	onboarding *onboarding.Service
	sequencer  *gate.Sequencer
	close      func()
}

func openBackend(cfg *config.Config) (*backend, error) {
	policy, err := gate.ParseFailurePolicy(cfg.Gate.FailurePolicy)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	closers := []func(){func() { db.Close() }}
	cache, err := openCache(cfg, &closers)
	if err != nil {
		db.Close()
		return nil, err
	}

	return newBackend(db, cache, policy, cfg.Gate.LookupTimeout, closers), nil
}

// readOnlyCache consults the shared completion cache without ever writing to it
type readOnlyCache struct {
	gate.CompletionCache
}

func (readOnlyCache) MarkCompleted(context.Context, uuid.UUID) {}

func newBackend(db *bun.DB, cache gate.CompletionCache, policy gate.FailurePolicy, timeout time.Duration, closers []func()) *backend {
	cache = readOnlyCache{cache}
	svc := onboarding.NewService(onboarding.NewRepository(db), cache)
	return &backend{
		users:      user.NewRepository(db),
		onboarding: svc,
		sequencer:  gate.NewSequencer(svc, cache, gate.WithFailurePolicy(policy), gate.WithLookupTimeout(timeout)),
		close: func() {
			for _, c := range closers {
				c()
			}
		},
	}
}

func openCache(cfg *config.Config, closers *[]func()) (gate.CompletionCache, error) {
	if cfg.Gate.CacheBackend == "memory" {
		return gate.NewMemoryCache(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	*closers = append(*closers, func() { client.Close() })

	return gate.NewRedisCache(client), nil
}

// withBackend loads config, opens the backend and runs fn with a bounded context
func withBackend(fn func(ctx context.Context, b *backend) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.close()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	return fn(ctx, b)
}

func newGateCmd() *cobra.Command {
	gateCmd := &cobra.Command{
		Use:   "gate",
		Short: "Inspect the onboarding gate",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Show the gate decision a user would get for a path (never writes the completion cache)",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			path, _ := cmd.Flags().GetString("path")
			levelName, _ := cmd.Flags().GetString("level")

			level, err := gate.ParseLevel(levelName)
			if err != nil {
				return err
			}

			return withBackend(func(ctx context.Context, b *backend) error {
				session, err := sessionForEmail(ctx, b.users, email)
				if err != nil {
					return err
				}

				d := b.sequencer.Resolve(ctx, level, session, path)

				fmt.Println(titleStyle.Render("Gate decision"))
				printField("email", email)
				printField("path", path)
				printField("level", level)
				printField("verified", session.EmailVerifiedAt != nil)
				printField("decision", renderDecision(d))
				return nil
			})
		},
	}
	checkCmd.Flags().String("email", "", "User email")
	checkCmd.Flags().String("path", gate.PathHome, "Requested client path")
	checkCmd.Flags().String("level", "onboarded", "Gate level (session, verified, onboarded)")
	_ = checkCmd.MarkFlagRequired("email")

	gateCmd.AddCommand(checkCmd)
	return gateCmd
}

func newOnboardingCmd() *cobra.Command {
	onboardingCmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Inspect onboarding state",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show a user's onboarding profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")

			return withBackend(func(ctx context.Context, b *backend) error {
				u, err := b.users.GetByEmail(ctx, email)
				if err != nil {
					return fmt.Errorf("find user %q: %w", email, err)
				}

				p, err := b.onboarding.Profile(ctx, u.ID)
				if err != nil {
					return err
				}

				fmt.Println(titleStyle.Render("Onboarding"))
				printField("user", u.ID)
				if p == nil {
					printField("completed", false)
					printField("profile", "none")
					return nil
				}
				printField("completed", p.Completed)
				printField("name", p.DisplayName)
				printField("styles", p.StylePreferences)
				printField("colors", p.FavoriteColors)
				if p.CompletedAt != nil {
					printField("completed at", p.CompletedAt.Format(time.RFC3339))
				}
				return nil
			})
		},
	}
	statusCmd.Flags().String("email", "", "User email")
	_ = statusCmd.MarkFlagRequired("email")

	onboardingCmd.AddCommand(statusCmd)
	return onboardingCmd
}
