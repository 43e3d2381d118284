package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCmdRequiresShapesFlag(t *testing.T) {
	cmd := NewServeCmd()
	cmd.SetArgs(nil)
	err := cmd.RunE(cmd, nil)
	assert.ErrorIs(t, err, errNoShapesFlag)
}

func TestServeCmdRegistersExpectedFlags(t *testing.T) {
	cmd := NewServeCmd()
	for _, name := range []string{flagShapes, flagData, flagFormat, "host", "timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
}
