package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.4.2"
	assert.Equal(t, "1.4.2", Short())

	Version = "0.1.0-dev"
	assert.Equal(t, "0.1.0-dev", Short())
}
