package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/mailadapter/internal/pkg/config"
	"github.com/shandysiswandi/mailadapter/internal/pkg/goerror"
	"github.com/shandysiswandi/mailadapter/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type created struct {
	ID string `json:"id"`
}

func (created) StatusCode() int { return http.StatusCreated }
func (created) Message() string { return "created" }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	var cfg config.Config
	if yaml != "" {
		v, err := config.NewViperFromBytes("yaml", []byte(yaml))
		require.NoError(t, err)
		cfg = v
	}

	return NewRouter(Config{Config: cfg, UUID: fixedID("generated-cid")})
}

func serve(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Responses(t *testing.T) {
	tests := []struct {
		name       string
		handler    Handler
		wantStatus int
		wantBody   string
	}{
		{
			name:       "nil response is no content",
			handler:    func(*Request) (any, error) { return nil, nil },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "payload with status and message",
			handler:    func(*Request) (any, error) { return created{ID: "1"}, nil },
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"created","data":{"id":"1"}}`,
		},
		{
			name: "validation error carries fields",
			handler: func(*Request) (any, error) {
				return nil, goerror.NewInvalidInput(validator.V10ValidationError{"subject": "subject is a required field"})
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"message":"Validation error","error":{"subject":"subject is a required field"}}`,
		},
		{
			name: "configuration error exposes its message",
			handler: func(*Request) (any, error) {
				return nil, goerror.NewConfiguration(errors.New("missing"), "Service implementation not configured for: OCI")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Service implementation not configured for: OCI"}`,
		},
		{
			name:       "unclassified error is generic",
			handler:    func(*Request) (any, error) { return nil, errors.New("db password leaked") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal server error"}`,
		},
		{
			name:       "panic is recovered",
			handler:    func(*Request) (any, error) { panic("boom") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			r := newTestRouter(t, "")
			r.POST("/api/v1/test", tt.handler)

			// Act
			rec := serve(r, http.MethodPost, "/api/v1/test", "{}", nil)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, "")
	r.POST("/api/v1/test", func(*Request) (any, error) { return nil, nil })

	rec := serve(r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"endpoint not found"}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/api/v1/test", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_CorrelationID(t *testing.T) {
	r := newTestRouter(t, "")
	r.GET("/ping", func(*Request) (any, error) { return nil, nil })

	rec := serve(r, http.MethodGet, "/ping", "", map[string]string{HeaderCorrelationID: "from-client"})
	assert.Equal(t, "from-client", rec.Header().Get(HeaderCorrelationID))

	rec = serve(r, http.MethodGet, "/ping", "", map[string]string{"cID": "from-cid"})
	assert.Equal(t, "from-cid", rec.Header().Get(HeaderCorrelationID))

	rec = serve(r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, "generated-cid", rec.Header().Get(HeaderCorrelationID))
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: /api/v1/blocked\n")
	r.POST("/api/v1/blocked", func(*Request) (any, error) { return nil, nil })
	r.POST("/api/v1/open", func(*Request) (any, error) { return nil, nil })

	rec := serve(r, http.MethodPost, "/api/v1/blocked", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(r, http.MethodPost, "/api/v1/open", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequest_DecodeBody(t *testing.T) {
	type body struct {
		Subject string `json:"subject"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "ok", payload: `{"subject":"hi"}`},
		{name: "unknown field", payload: `{"subject":"hi","extra":1}`, wantErr: true},
		{name: "trailing data", payload: `{"subject":"hi"}{}`, wantErr: true},
		{name: "malformed", payload: `{"subject":`, wantErr: true},
		{name: "empty", payload: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))}

			var dst body
			err := req.DecodeBody(&dst)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "hi", dst.Subject)
				return
			}
			var gerr *goerror.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, goerror.CodeInvalidFormat, gerr.Code())
		})
	}
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", realIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")
	assert.Equal(t, "203.0.113.9", realIP(req))

	req.Header.Set("X-Real-IP", "not-an-ip")
	assert.Equal(t, "203.0.113.9", realIP(req))
}
