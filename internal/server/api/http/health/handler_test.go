package health

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestCheckReportsServiceIdentity(t *testing.T) {
	h := NewHandler(slog.Default(), huma.Middlewares{})

	out, err := h.check(context.Background(), &checkInput{})

	require.NoError(t, err)
	assert.Equal(t, "OK", out.Body.Status)
	assert.Equal(t, serviceName, out.Body.Service,
		"a probe must be able to tell this service from whatever else answers the port")
}
