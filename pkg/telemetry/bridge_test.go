package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCommander struct {
	calls  []string
	values []float64
	err    error
}

func (f *fakeCommander) record(name string, value float64) error {
	f.calls = append(f.calls, name)
	f.values = append(f.values, value)
	return f.err
}

func (f *fakeCommander) RequestFWVersion() error      { return f.record("fw", 0) }
func (f *fakeCommander) RequestState() error          { return f.record("state", 0) }
func (f *fakeCommander) SetDutyCycle(v float64) error { return f.record("duty", v) }
func (f *fakeCommander) SetCurrent(v float64) error   { return f.record("current", v) }
func (f *fakeCommander) SetBrake(v float64) error     { return f.record("brake", v) }
func (f *fakeCommander) SetSpeed(v float64) error     { return f.record("speed", v) }
func (f *fakeCommander) SetPosition(v float64) error  { return f.record("position", v) }
func (f *fakeCommander) SetServo(v float64) error     { return f.record("servo", v) }

func TestApplyCommand(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		value   float64
	}{
		{"fw", "", 0},
		{"state", "", 0},
		{"duty", "0.5", 0.5},
		{"current", "-7.25", -7.25},
		{"brake", " 3 ", 3},
		{"speed", "4500", 4500},
		{"position", "180", 180},
		{"servo", "0.66", 0.66},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &fakeCommander{}
			require.NoError(t, applyCommand(c, tc.name, []byte(tc.payload)))
			require.Equal(t, []string{tc.name}, c.calls)
			require.Equal(t, []float64{tc.value}, c.values)
		})
	}
}

func TestApplyCommandRejects(t *testing.T) {
	c := &fakeCommander{}
	require.Error(t, applyCommand(c, "duty", []byte("fast")))
	require.Error(t, applyCommand(c, "warp", []byte("1")))
	require.Empty(t, c.calls)
}

func TestClientOptionsFromURL(t *testing.T) {
	opts, prefix, err := ClientOptionsFromURL("mqtt://user:pw@broker.local:1883/vesc/garage/")
	require.NoError(t, err)
	require.Equal(t, "vesc/garage/", prefix)
	require.Len(t, opts.Servers, 1)
	require.Equal(t, "tcp", opts.Servers[0].Scheme)
	require.Equal(t, "broker.local:1883", opts.Servers[0].Host)
	require.Equal(t, "user", opts.Username)
	require.Equal(t, "pw", opts.Password)

	_, _, err = ClientOptionsFromURL("://bad")
	require.Error(t, err)
}
