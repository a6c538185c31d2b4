package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/mailadapter/internal/email"
)

func (a *App) initModules() {
	if err := email.New(email.Dependency{
		Ctx:        a.ctx,
		Email:      a.emailCfg,
		Config:     a.config,
		Messaging:  a.messaging,
		Instrument: a.ins,
		UID:        a.uid,
		UUID:       a.uuid,
		Clock:      a.clock,
		Goroutine:  a.goroutine,
		Validator:  a.validator,
		Router:     a.router,
	}); err != nil {
		slog.Error("failed to init module email", "error", err, "provider", a.emailCfg.Provider)
		os.Exit(1)
	}
}
