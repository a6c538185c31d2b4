package stacktrace

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/mailadapter/internal/email/usecase.(*Usecase).SendEmail(...)
	/src/mailadapter/internal/email/usecase/send_email.go:42 +0x1a
main.main()
	/src/mailadapter/main.go:12
github.com/shandysiswandi/mailadapter/internal/pkg/router.(*Router).ServeHTTP(...)
	/src/mailadapter/internal/pkg/router/router.go:88
`)

	paths := InternalPaths(stack)

	assert.Equal(t, []string{
		"internal/email/usecase/send_email.go:42",
		"internal/pkg/router/router.go:88",
	}, paths)
}

func TestInternalPaths_Empty(t *testing.T) {
	assert.Empty(t, InternalPaths(nil))
	assert.Empty(t, InternalPaths([]byte("main.main()\n\t/src/main.go:3 +0x1")))
}

func TestAttr(t *testing.T) {
	attr := Attr()

	assert.Equal(t, "stack", attr.Key)
	assert.Contains(t, []slog.Kind{slog.KindAny, slog.KindString}, attr.Value.Kind())
}
