package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(3 * time.Second)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 3*time.Second, cfg.ResponseHeader)

	fallback := DefaultConfig(0)
	assert.Equal(t, 10*time.Second, fallback.Timeout)
}

func TestNew(t *testing.T) {
	client := New(DefaultConfig(2 * time.Second))

	assert.Equal(t, 2*time.Second, client.Timeout)
	tr, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 20, tr.MaxIdleConnsPerHost)
	assert.Equal(t, 2*time.Second, tr.ResponseHeaderTimeout)
}
