package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Hook(ContextHook{})
	t.Cleanup(func() { log.Logger = prev })

	logger := Component("search")
	logger.Info().Ctx(WithDocument(context.Background(), "a.txt")).Msg("scan done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "search", entry["cmp"])
	assert.Equal(t, "a.txt", entry["document"])
	assert.Equal(t, "scan done", entry["message"])
}
