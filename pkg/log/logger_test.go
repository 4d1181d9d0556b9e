package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Infof("walked %d nodes", 3)
	l.Warnf("skipping %s", "tail")
	l.Errorf("bad node at %#x", 0x30)

	out := buf.String()
	assert.Contains(t, out, "[INFO] walked 3 nodes")
	assert.Contains(t, out, "[WARN] skipping tail")
	assert.Contains(t, out, "[ERROR] bad node at 0x30")
}

func TestQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := Quiet(New(&buf))

	l.Infof("hidden")
	l.Warnf("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] shown")
}

func TestDefaultLogger(t *testing.T) {
	saved := DefaultLogger
	defer func() { DefaultLogger = saved }()

	var buf bytes.Buffer
	DefaultLogger = New(&buf)
	Warnf("node %d", 1)
	Errorf("node %d", 2)
	Infof("node %d", 3)

	assert.Contains(t, buf.String(), "[WARN] node 1")
	assert.Contains(t, buf.String(), "[ERROR] node 2")
	assert.Contains(t, buf.String(), "[INFO] node 3")
}
