package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/mailadapter/internal/email"
	"github.com/shandysiswandi/mailadapter/internal/email/adapter"
	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/email/usecase"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
)

// ErrInvalidInput is returned by Adapt when the input is not one canonical request.
var ErrInvalidInput = errors.New("invalid adapt input")

// Check loads the configuration and verifies that the configured provider has
// a registered transform. The outcome is written to w.
func Check(configPath string, w io.Writer) error {
	a := newApp(configPath)
	defer a.cancel()

	a.initConfig()
	defer a.config.Close()

	reg, err := adapter.NewRegistry(adapter.DefaultStrategies()...)
	if err != nil {
		return err
	}

	registered := strings.Join(lo.Map(reg.Providers(), func(p entity.Provider, _ int) string {
		return p.String()
	}), ", ")

	if err := email.CheckProvider(reg, a.emailCfg.Provider); err != nil {
		fmt.Fprintf(w, "provider %q is not usable (registered: %s)\n", a.emailCfg.Provider, registered)
		return err
	}

	fmt.Fprintf(w, "provider %s OK (registered: %s)\n", a.emailCfg.Provider, registered)
	return nil
}

// Adapt runs one canonical request read from in through the pipeline and
// writes the adapted payload to out. Nothing is published and logs stay on
// the default logger.
func Adapt(ctx context.Context, configPath string, in io.Reader, out io.Writer) error {
	a := newApp(configPath)
	defer a.cancel()

	a.initConfig()
	defer a.config.Close()
	a.ins = instrument.NewNoop()
	a.initLibraries()

	cfg := a.emailCfg
	cfg.StrictStartup = true

	uc, err := email.NewUsecase(email.Dependency{
		Email:      cfg,
		Instrument: a.ins,
		UID:        a.uid,
		Clock:      a.clock,
		Validator:  a.validator,
		Output:     out,
	})
	if err != nil {
		return err
	}

	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()

	var req entity.EmailRequest
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return uc.SendEmail(ctx, usecase.SendEmailInput{Request: req, Source: "cli"})
}
