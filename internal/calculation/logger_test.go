package calculation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf, false)

	l.Debugf("hidden %d", 1)
	l.Infof("projection %s", "done")
	l.Warnf("slow")
	l.Errorf("failed: %v", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] projection done")
	assert.Contains(t, out, "[WARN] slow")
	assert.Contains(t, out, "[ERROR] failed: boom")

	buf.Reset()
	l.Debug = true
	l.Debugf("visible %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG] visible 2")
}

func TestYearString(t *testing.T) {
	y := 2056
	assert.Equal(t, "2056", yearString(&y))
	assert.Equal(t, "none", yearString(nil))
}
