package msgs

import "fmt"

// ID identifies a command or response on the wire. Values are assigned
// by the firmware and shared between both directions.
type ID byte

// Command IDs understood by this driver.
const (
	IDFWVersion       ID = 0
	IDGetValues       ID = 4
	IDSetDuty         ID = 5
	IDSetCurrent      ID = 6
	IDSetCurrentBrake ID = 7
	IDSetRPM          ID = 8
	IDSetPos          ID = 9
	IDSetServoPos     ID = 12
)

// Command is an outbound message.
type Command interface {
	// ID returns the command ID.
	ID() ID
	// Payload returns the frame payload, starting with the ID byte.
	Payload() []byte
}

// Message is a decoded inbound message.
type Message interface {
	// ID returns the responding command ID.
	ID() ID
}

// GetFWVersion requests the firmware version.
type GetFWVersion struct{}

// ID implements Command.
func (GetFWVersion) ID() ID { return IDFWVersion }

// Payload implements Command.
func (GetFWVersion) Payload() []byte { return []byte{byte(IDFWVersion)} }

// GetValues requests the controller state (currents, RPM, temperatures...).
type GetValues struct{}

// ID implements Command.
func (GetValues) ID() ID { return IDGetValues }

// Payload implements Command.
func (GetValues) Payload() []byte { return []byte{byte(IDGetValues)} }

// SetDuty commands a PWM duty cycle, -1..1.
type SetDuty struct {
	DutyCycle float64
}

// ID implements Command.
func (SetDuty) ID() ID { return IDSetDuty }

// Payload implements Command.
func (c SetDuty) Payload() []byte {
	return appendScaled32([]byte{byte(IDSetDuty)}, c.DutyCycle, 100000)
}

// SetCurrent commands a motor current in amperes.
type SetCurrent struct {
	Current float64
}

// ID implements Command.
func (SetCurrent) ID() ID { return IDSetCurrent }

// Payload implements Command.
func (c SetCurrent) Payload() []byte {
	return appendScaled32([]byte{byte(IDSetCurrent)}, c.Current, 1000)
}

// SetCurrentBrake commands a braking current in amperes.
type SetCurrentBrake struct {
	Current float64
}

// ID implements Command.
func (SetCurrentBrake) ID() ID { return IDSetCurrentBrake }

// Payload implements Command.
func (c SetCurrentBrake) Payload() []byte {
	return appendScaled32([]byte{byte(IDSetCurrentBrake)}, c.Current, 1000)
}

// SetRPM commands an electrical RPM.
type SetRPM struct {
	RPM float64
}

// ID implements Command.
func (SetRPM) ID() ID { return IDSetRPM }

// Payload implements Command.
func (c SetRPM) Payload() []byte {
	return appendScaled32([]byte{byte(IDSetRPM)}, c.RPM, 1)
}

// SetPos commands a rotor position in degrees.
type SetPos struct {
	Position float64
}

// ID implements Command.
func (SetPos) ID() ID { return IDSetPos }

// Payload implements Command.
func (c SetPos) Payload() []byte {
	return appendScaled32([]byte{byte(IDSetPos)}, c.Position, 1000000)
}

// SetServoPos commands the auxiliary servo output, 0..1.
type SetServoPos struct {
	Position float64
}

// ID implements Command.
func (SetServoPos) ID() ID { return IDSetServoPos }

// Payload implements Command.
func (c SetServoPos) Payload() []byte {
	return appendScaled16([]byte{byte(IDSetServoPos)}, c.Position, 1000)
}

// FWVersion is the firmware version reply.
type FWVersion struct {
	Major int
	Minor int
}

// ID implements Message.
func (FWVersion) ID() ID { return IDFWVersion }

// String formats the version for display.
func (m FWVersion) String() string {
	return fmt.Sprintf("%d.%d", m.Major, m.Minor)
}

// Fault is a controller fault code.
type Fault byte

// Fault codes reported in Values.
const (
	FaultNone Fault = iota
	FaultOverVoltage
	FaultUnderVoltage
	FaultDRV
	FaultAbsOverCurrent
	FaultOverTempFET
	FaultOverTempMotor
)

var faultNames = map[Fault]string{
	FaultNone:           "none",
	FaultOverVoltage:    "over voltage",
	FaultUnderVoltage:   "under voltage",
	FaultDRV:            "DRV fault",
	FaultAbsOverCurrent: "absolute over current",
	FaultOverTempFET:    "over temperature FET",
	FaultOverTempMotor:  "over temperature motor",
}

// String implements fmt.Stringer.
func (f Fault) String() string {
	if name, ok := faultNames[f]; ok {
		return name
	}
	return fmt.Sprintf("fault %d", byte(f))
}

// Values is the controller state reply.
type Values struct {
	TempFET          float64 // degrees C
	TempMotor        float64 // degrees C
	MotorCurrent     float64 // A
	InputCurrent     float64 // A
	CurrentD         float64 // A, d-axis
	CurrentQ         float64 // A, q-axis
	DutyCycle        float64 // -1..1
	RPM              float64 // electrical RPM
	InputVoltage     float64 // V
	AmpHours         float64 // Ah consumed
	AmpHoursCharged  float64 // Ah regenerated
	WattHours        float64 // Wh consumed
	WattHoursCharged float64 // Wh regenerated
	Tachometer       int
	TachometerAbs    int
	Fault            Fault
}

// ID implements Message.
func (Values) ID() ID { return IDGetValues }
