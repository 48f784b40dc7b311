package msgs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func int32Payload(id ID, v int32) []byte {
	b := []byte{byte(id), 0, 0, 0, 0}
	binary.BigEndian.PutUint32(b[1:], uint32(v))
	return b
}

func TestCommandPayloads(t *testing.T) {
	testCases := []struct {
		name string
		cmd  Command
		want []byte
	}{
		{"fw version request", GetFWVersion{}, []byte{0}},
		{"values request", GetValues{}, []byte{4}},
		{"duty", SetDuty{DutyCycle: 0.5}, int32Payload(IDSetDuty, 50000)},
		{"negative duty", SetDuty{DutyCycle: -0.25}, int32Payload(IDSetDuty, -25000)},
		{"current", SetCurrent{Current: 12.5}, int32Payload(IDSetCurrent, 12500)},
		{"brake", SetCurrentBrake{Current: 3}, int32Payload(IDSetCurrentBrake, 3000)},
		{"rpm", SetRPM{RPM: 7500}, int32Payload(IDSetRPM, 7500)},
		{"position", SetPos{Position: 180}, int32Payload(IDSetPos, 180000000)},
		{"servo", SetServoPos{Position: 0.5}, []byte{byte(IDSetServoPos), 0x01, 0xf4}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.cmd.Payload())
			require.Equal(t, tc.want[0], byte(tc.cmd.ID()))
		})
	}
}

func valuesPayload() []byte {
	b := []byte{byte(IDGetValues)}
	put16 := func(v int16) {
		b = append(b, byte(uint16(v)>>8), byte(uint16(v)))
	}
	put32 := func(v int32) {
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(v))
		b = append(b, tmp[:]...)
	}
	put16(253)    // temp FET 25.3
	put16(410)    // temp motor 41.0
	put32(1550)   // motor current 15.50
	put32(820)    // input current 8.20
	put32(0)      // current d
	put32(975)    // current q 9.75
	put16(420)    // duty 0.42
	put32(12345)  // rpm
	put16(362)    // input voltage 36.2
	put32(15000)  // amp hours 1.5
	put32(2500)   // amp hours charged 0.25
	put32(49000)  // watt hours 4.9
	put32(800)    // watt hours charged 0.08
	put32(100200) // tachometer
	put32(100400) // tachometer abs
	b = append(b, byte(FaultOverTempFET))
	return b
}

func TestDecodeValues(t *testing.T) {
	msg, err := Decode(valuesPayload())
	require.NoError(t, err)
	values, ok := msg.(Values)
	require.True(t, ok, "want Values, got %T", msg)
	require.Equal(t, IDGetValues, values.ID())

	require.InDelta(t, 25.3, values.TempFET, 1e-9)
	require.InDelta(t, 41.0, values.TempMotor, 1e-9)
	require.InDelta(t, 15.5, values.MotorCurrent, 1e-9)
	require.InDelta(t, 8.2, values.InputCurrent, 1e-9)
	require.InDelta(t, 0, values.CurrentD, 1e-9)
	require.InDelta(t, 9.75, values.CurrentQ, 1e-9)
	require.InDelta(t, 0.42, values.DutyCycle, 1e-9)
	require.InDelta(t, 12345, values.RPM, 1e-9)
	require.InDelta(t, 36.2, values.InputVoltage, 1e-9)
	require.InDelta(t, 1.5, values.AmpHours, 1e-9)
	require.InDelta(t, 0.25, values.AmpHoursCharged, 1e-9)
	require.InDelta(t, 4.9, values.WattHours, 1e-9)
	require.InDelta(t, 0.08, values.WattHoursCharged, 1e-9)
	require.Equal(t, 100200, values.Tachometer)
	require.Equal(t, 100400, values.TachometerAbs)
	require.Equal(t, FaultOverTempFET, values.Fault)
}

func TestDecodeFWVersion(t *testing.T) {
	msg, err := Decode([]byte{byte(IDFWVersion), 3, 40})
	require.NoError(t, err)
	fw, ok := msg.(FWVersion)
	require.True(t, ok, "want FWVersion, got %T", msg)
	require.Equal(t, 3, fw.Major)
	require.Equal(t, 40, fw.Minor)
	require.Equal(t, "3.40", fw.String())
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"unknown id", []byte{0x7f, 1, 2}},
		{"short fw version", []byte{byte(IDFWVersion), 3}},
		{"short values", valuesPayload()[:20]},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.in)
			require.Error(t, err)
		})
	}
}

func TestFaultString(t *testing.T) {
	require.Equal(t, "none", FaultNone.String())
	require.Equal(t, "over voltage", FaultOverVoltage.String())
	require.Equal(t, "fault 200", Fault(200).String())
}
