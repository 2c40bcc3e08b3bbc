package testutil

import (
	"context"

	"github.com/coachportal/portalproxy/internal/types"
)

// SetupContext returns a background context tagged like an incoming request
func SetupContext() context.Context {
	return types.SetRequestID(context.Background(), "req_"+types.GenerateUUID())
}
