package msgs

import "fmt"

// Decode turns a frame payload into a typed Message.
func Decode(payload []byte) (Message, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	r := &reader{b: payload, pos: 1}
	switch id := ID(payload[0]); id {
	case IDFWVersion:
		msg := FWVersion{
			Major: int(r.byte()),
			Minor: int(r.byte()),
		}
		if r.short {
			return nil, fmt.Errorf("firmware version payload too short: %d bytes", len(payload))
		}
		return msg, nil

	case IDGetValues:
		msg := Values{
			TempFET:          r.scaled16(10),
			TempMotor:        r.scaled16(10),
			MotorCurrent:     r.scaled32(100),
			InputCurrent:     r.scaled32(100),
			CurrentD:         r.scaled32(100),
			CurrentQ:         r.scaled32(100),
			DutyCycle:        r.scaled16(1000),
			RPM:              r.scaled32(1),
			InputVoltage:     r.scaled16(10),
			AmpHours:         r.scaled32(10000),
			AmpHoursCharged:  r.scaled32(10000),
			WattHours:        r.scaled32(10000),
			WattHoursCharged: r.scaled32(10000),
			Tachometer:       int(r.int32()),
			TachometerAbs:    int(r.int32()),
			Fault:            Fault(r.byte()),
		}
		if r.short {
			return nil, fmt.Errorf("values payload too short: %d bytes", len(payload))
		}
		return msg, nil

	default:
		return nil, fmt.Errorf("unknown command ID %d", payload[0])
	}
}
