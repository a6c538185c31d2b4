package inbound

import (
	"github.com/shandysiswandi/mailadapter/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/email/send", end.SendEmail)
	r.GET("/health", end.Health)
}
