package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "recall version dev")
}
