package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeSource(t *testing.T, lines ...string) string {
	path := filepath.Join(t.TempDir(), "prog.s")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	table := [](struct {
		lines    []string
		code     int
		contains string
	}){
		{[]string{"main:", "add $t0, $t1, $t2"}, 0, "0x012a4020"},
		{[]string{"main:", "add $t0, $t1, $t2", "foo $t0"}, 1, "0x012a4020"},
		{[]string{"my.label:", "j my.label"}, 0, "0x08100000"},
	}

	for n, entry := range table {
		path := writeSource(t, entry.lines...)
		var out bytes.Buffer
		code := run([]string{"mipsasm", "-c", path}, strings.NewReader(""), &out)
		assert.Equal(entry.code, code, n)
		assert.Contains(out.String(), entry.contains, n)
	}
}

func TestRun_Stdin(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	code := run([]string{"mipsasm", "-a", "0x1000"}, strings.NewReader("jr $ra\n"), &out)
	assert.Equal(0, code)
	assert.Contains(out.String(), "0x00001000")
	assert.Contains(out.String(), "0x03e00008")
}

func TestRun_Failures(t *testing.T) {
	assert := assert.New(t)

	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.s")
	assert.Equal(1, run([]string{"mipsasm", "-c", missing}, nil, &out))
	assert.Equal(2, run([]string{"mipsasm", "extra"}, nil, &out))
	assert.Equal(1, run([]string{"mipsasm", "-a", "bogus"}, strings.NewReader("jr $ra\n"), &out))
}
