package vostest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/stretchr/testify/assert"
)

func TestExecutor(t *testing.T) {
	out := &bytes.Buffer{}
	exec := &Executor{Process: Echo}

	status, err := exec.Run("/bin/echo", []string{"echo", "a", "b"}, &vos.ProcAttr{
		Env:   []string{"A=1"},
		Files: vos.NewStdIO(nil, out, nil),
	})

	assert.Nil(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "a b\n", out.String())
	assert.Equal(t, []Call{{Path: "/bin/echo", Argv: []string{"echo", "a", "b"}, Env: []string{"A=1"}}}, exec.Calls)
}

func TestExecutor_err(t *testing.T) {
	exec := &Executor{Process: Exit(3), Err: errors.New("boom")}

	_, err := exec.Run("/bin/x", []string{"x"}, &vos.ProcAttr{Files: vos.NewNullIO()})

	assert.EqualError(t, err, "boom")
	assert.Len(t, exec.Calls, 1)
}

func TestNewFs(t *testing.T) {
	fsys := NewFs(t, "/usr/bin/tool")

	path, err := vos.LookPath(fsys, vos.NewMapEnvFromEnvList([]string{"PATH=/usr/bin"}), "tool")

	assert.Nil(t, err)
	assert.Equal(t, "/usr/bin/tool", path)
}
