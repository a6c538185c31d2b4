package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shandysiswandi/mailadapter/internal/email/entity"
	"github.com/shandysiswandi/mailadapter/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
)

const ruler = "----------------------------------"

// Log prints the pretty JSON of each payload between dashed rulers, through
// slog or straight to a writer.
type Log struct {
	ins instrument.Instrumentation
	out io.Writer
}

// NewLog returns a sink that logs through the default slog logger.
func NewLog(ins instrument.Instrumentation) *Log {
	return &Log{ins: ins}
}

// NewWriter returns a sink that writes to w instead of the logger.
func NewWriter(ins instrument.Instrumentation, w io.Writer) *Log {
	return &Log{ins: ins, out: w}
}

func (l *Log) Emit(ctx context.Context, payload entity.Payload) error {
	ctx, span := l.ins.Tracer("email.outbound.sink").Start(ctx, "LogEmit")
	defer span.End()

	b, err := marshal(payload, true)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	text := "\n" + ruler + "\n" + string(b) + "\n" + ruler
	if l.out == nil {
		slog.InfoContext(ctx, text, "provider", payloadAttr(payload))
		return nil
	}

	if _, err := fmt.Fprintln(l.out, text); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
