package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/mailadapter/internal/email"
	"github.com/shandysiswandi/mailadapter/internal/pkg/clock"
	"github.com/shandysiswandi/mailadapter/internal/pkg/config"
	"github.com/shandysiswandi/mailadapter/internal/pkg/goroutine"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
	"github.com/shandysiswandi/mailadapter/internal/pkg/messaging"
	"github.com/shandysiswandi/mailadapter/internal/pkg/router"
	"github.com/shandysiswandi/mailadapter/internal/pkg/uid"
	"github.com/shandysiswandi/mailadapter/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	configPath string
	config     config.Config
	emailCfg   email.Config
	ins        instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID

	// resources
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

func newApp(configPath string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		ctx:        ctx,
		cancel:     cancel,
		configPath: configPath,
	}
}

// New initializes the application with default wiring and returns an App instance.
// An empty configPath falls back to CONFIG_PATH and then ./config/config.yaml.
func New(configPath string) *App {
	app := newApp(configPath)

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
