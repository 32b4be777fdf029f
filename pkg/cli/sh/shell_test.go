package sh

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/camview/pkg/camera"
	"github.com/robotalks/camview/pkg/camview"
	"github.com/robotalks/camview/pkg/display"
)

type testSession struct {
	keys   []camview.Key
	result camview.KeyResult
	screen display.Bitmap
	status camview.Status
}

func (s *testSession) HandleKey(key camview.Key) camview.KeyResult {
	s.keys = append(s.keys, key)
	return s.result
}

func (s *testSession) Screen() *display.Bitmap {
	b := s.screen
	return &b
}

func (s *testSession) Status() camview.Status {
	return s.status
}

func TestPressKey(t *testing.T) {
	session := &testSession{}
	s := &Shell{Session: session}
	out, err := s.PressKey(camview.KeyUp)
	require.NoError(t, err)
	assert.Equal(t, "OK", out)

	session.result.Path = "DCIM/20210304-050607.bmp"
	out, err = s.PressKey(camview.KeyOk)
	require.NoError(t, err)
	assert.Equal(t, "Saved DCIM/20210304-050607.bmp", out)

	s.OutputJSON = true
	out, err = s.PressKey(camview.KeyOk)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"ok","path":"DCIM/20210304-050607.bmp"}`, out)

	session.result.Err = errors.New("timeout")
	_, err = s.PressKey(camview.KeyLeft)
	assert.Equal(t, session.result.Err, err)
	assert.Equal(t, []camview.Key{camview.KeyUp, camview.KeyOk, camview.KeyOk, camview.KeyLeft}, session.keys)
}

func TestShowScreen(t *testing.T) {
	session := &testSession{}
	session.screen.DrawDot(0, 0)
	s := &Shell{Session: session}
	lines := strings.Split(s.ShowScreen(), "\n")
	require.True(t, len(lines) >= display.Height/2)
	assert.Equal(t, session.screen.String(), s.ShowScreen())
}

func TestFormatStatus(t *testing.T) {
	st := camview.Status{
		Connected: true,
		State:     camera.Filling,
		Stats:     camera.Stats{Records: 64, Discarded: 3, Clamped: 1},
		Buffered:  12,
	}
	s := &Shell{}
	out, err := s.FormatStatus(st)
	require.NoError(t, err)
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "records:   64")
	assert.Contains(t, out, "clamped:   1")

	s.OutputJSON = true
	out, err = s.FormatStatus(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{"connected":true,"state":"`+camera.Filling.String()+`","records":64,"discarded":3,"clamped":1,"buffered":12,"dropped":0}`, out)
}

func TestCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"up", "down", "left", "right", "snap", "show", "status"} {
		assert.True(t, names[name], name)
	}
}
