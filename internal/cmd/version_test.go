package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd(nil)

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestVersionCmd_Execute(t *testing.T) {
	isolateConfig(t)

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "rtb version")
	assert.Contains(t, out, "Go:")
}
