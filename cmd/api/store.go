package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/core/ports"
	"github.com/communityhub/events-api/internal/infrastructure/config"
	mongostore "github.com/communityhub/events-api/internal/infrastructure/db/mongo"
	"github.com/communityhub/events-api/internal/infrastructure/db/postgres"
)

// store is the backend chosen by STORE_BACKEND, seen through the ports.
type store struct {
	name     string
	users    ports.UserRepository
	events   ports.EventRepository
	regs     ports.RegistrationRepository
	activity ports.ActivityRepository
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

func (s *store) Ping(ctx context.Context) error { return s.ping(ctx) }

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, cfg.Postgres.URL, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		s := postgres.NewStore(db)
		return &store{
			name:     config.BackendPostgres,
			users:    s.Users,
			events:   s.Events,
			regs:     s.Registrations,
			activity: s.Activity,
			ping:     s.Ping,
			close:    func(context.Context) error { return db.Close() },
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s := mongostore.NewStore(db)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &store{
			name:     config.BackendMongo,
			users:    s.Users,
			events:   s.Events,
			regs:     s.Registrations,
			activity: s.Activity,
			ping:     s.Ping,
			close:    client.Disconnect,
		}, nil
	}
}
