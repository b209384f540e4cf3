package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	mandix "github.com/krishivaani/krishivaani/agent/mandi"
	queryx "github.com/krishivaani/krishivaani/agent/query"
	sessionx "github.com/krishivaani/krishivaani/agent/session"
	toolx "github.com/krishivaani/krishivaani/agent/tool"
	configx "github.com/krishivaani/krishivaani/pkg/config"
	_ "github.com/krishivaani/krishivaani/pkg/logger/autoload"
	postgresx "github.com/krishivaani/krishivaani/pkg/postgres"
)

func main() {
	ctx := context.Background()

	// The store is the source of truth for tracking codes. If it cannot be
	// reached the process must refuse to accept tool calls, so connectivity
	// failure here is fatal.
	pgCfg := configx.MustNew[postgresx.Config]("POSTGRES")
	db, err := postgresx.New(ctx, *pgCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("query store unreachable")
	}
	defer db.Close()

	store, err := queryx.NewStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build query store")
	}
	if err := store.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize query store")
	}

	mandiCfg := configx.MustNew[mandix.Config]("MANDI")
	prices, err := mandix.NewClient(*mandiCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build price gateway")
	}

	sessionCfg := configx.MustNew[sessionx.RedisConfig]("SESSION_REDIS")
	sessions, err := sessionx.NewRedisStore(*sessionCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build session store")
	}

	if _, err := toolx.NewDispatcher(store, prices); err != nil {
		log.Fatal().Err(err).Msg("failed to build dispatcher")
	}

	// Round-trip a probe session so a misconfigured session store fails
	// loudly at startup instead of on the first live call.
	probe := sessionx.NewContext(time.Now())
	if err := sessions.Save(ctx, probe); err != nil {
		log.Fatal().Err(err).Msg("session store unreachable")
	}
	if err := sessions.Delete(ctx, probe.ID); err != nil {
		log.Warn().Err(err).Msg("failed to clean up probe session")
	}

	log.Info().
		Int("tools", len(toolx.Infos())).
		Msg("query store, price gateway, session store and dispatcher ready")
}
