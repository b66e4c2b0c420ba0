package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressOverwritesPreviousLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Progress("Building release locally...")
	p.Progress("Done")

	// The second line returns to column zero and pads over the remainder
	// of the first.
	pad := strings.Repeat(" ", len("Building release locally...")-len("Done"))
	assert.Equal(t,
		"\rBuilding release locally..."+
			"\rDone"+pad,
		out.String())
}

func TestProgressDoesNotPadWhenLonger(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Progress("Go")
	p.Progress("Going")

	assert.Equal(t, "\rGo\rGoing", out.String())
}

func TestPrintlnClearsPendingProgress(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Progress("Signing...")
	p.Println("Build version: %s", "1.2.3")

	assert.Equal(t,
		"\rSigning..."+
			"\r          \r"+
			"Build version: 1.2.3\n",
		out.String())
}

func TestPrintlnWithoutProgressDoesNotClear(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Println("ready")

	assert.Equal(t, "ready\n", out.String())
}

func TestErrorAndWarningPrefixes(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewPrinter(&out)

	p.Errorln("fetch failed for %s", "GitHub")
	p.Warnln("latest lags behind")

	assert.Equal(t,
		"ERROR: fetch failed for GitHub\n"+
			"WARNING: latest lags behind\n",
		out.String())
}
