package reqctx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRunContext(t *testing.T) {
	ctx := WithRunContext(context.Background())
	rc := GetRunContext(ctx)

	assert.Len(t, rc.RunID, 16)
	assert.False(t, rc.StartTime.IsZero())
	assert.Same(t, rc, GetRunContext(ctx))
}

func TestGetRunContext_Missing(t *testing.T) {
	rc := GetRunContext(context.Background())
	assert.Equal(t, "unknown", rc.RunID)
}

func TestNewRunError(t *testing.T) {
	ctx := WithRunContext(context.Background())
	base := errors.New("disk full")

	err := NewRunError(ctx, base)

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), GetRunContext(ctx).RunID)
	assert.Contains(t, err.Error(), "disk full")
}
