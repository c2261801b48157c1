package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/audit"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/googleauth"
	"github.com/matiasleandrokruk/peoplebridge/internal/domain/tool"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/config"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/eventbus"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/sqlite"
)

// app holds the services shared by both transports.
type app struct {
	db       *sql.DB
	bus      *eventbus.Bus
	contacts *contacts.Service
	tools    *tool.ToolRegistry
	audit    *audit.AuditService

	log          zerolog.Logger
	cancel       context.CancelFunc
	recorderDone <-chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// newApp opens the database, connects the People API client and starts the audit recorder.
// A missing OAuth client file or stored token is not fatal: every tool call then
// fails as unauthenticated until `peoplebridge auth` has been run.
func newApp(ctx context.Context, cfg config.Config, log zerolog.Logger) (*app, error) {
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	api, err := peopleAPI(ctx, cfg, db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	bus := eventbus.New()
	svc := contacts.NewService(api, bus, log)

	registry := tool.NewToolRegistry()
	if err := tool.RegisterBuiltins(registry, svc); err != nil {
		_ = db.Close()
		return nil, err
	}

	auditSvc := audit.NewAuditService(db)
	recCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := audit.NewRecorder(auditSvc, bus, log).Start(recCtx)

	return &app{
		db:           db,
		bus:          bus,
		contacts:     svc,
		tools:        registry,
		audit:        auditSvc,
		log:          log,
		cancel:       cancel,
		recorderDone: done,
	}, nil
}

// Close drains pending audit events, then closes the database.
// It is safe to call more than once; only the first call does the work.
func (a *app) Close() error {
	a.closeOnce.Do(func() {
		a.bus.Close()
		<-a.recorderDone
		a.cancel()

		dropped := a.bus.Dropped()
		evt := a.log.Info()
		if dropped > 0 {
			evt = a.log.Warn()
		}
		evt.Uint64("dropped", dropped).Msg("audit recorder stopped")

		a.closeErr = a.db.Close()
	})
	return a.closeErr
}

func peopleAPI(ctx context.Context, cfg config.Config, db *sql.DB, log zerolog.Logger) (contacts.PeopleAPI, error) {
	if err := cfg.RequireCredentials(); err != nil {
		log.Warn().Err(err).Msg("google credentials not configured; contact tools will fail until configured")
		return contacts.NoCredentials(), nil
	}

	conf, err := googleauth.LoadClientConfig(cfg.CredentialsFile, cfg.CallbackAddr)
	if err != nil {
		log.Warn().Err(err).Msg("google oauth client unavailable; contact tools will fail until configured")
		return contacts.NoCredentials(), nil
	}

	store, err := tokenStore(cfg, db)
	if err != nil {
		return nil, err
	}

	ts, err := googleauth.TokenSource(ctx, conf, store, cfg.Account, log)
	if errors.Is(err, googleauth.ErrTokenNotFound) {
		log.Warn().Str("account", cfg.Account).Msg("no stored google token; run `peoplebridge auth`")
		return contacts.NoCredentials(), nil
	}
	if err != nil {
		return nil, err
	}

	return contacts.NewPeopleClient(ctx, ts)
}

func tokenStore(cfg config.Config, db *sql.DB) (*googleauth.SQLiteTokenStore, error) {
	key, err := googleauth.ParseKey(cfg.TokenKey)
	if err != nil {
		return nil, fmt.Errorf("PEOPLEBRIDGE_TOKEN_KEY: %w", err)
	}
	return googleauth.NewSQLiteTokenStore(db, key), nil
}
