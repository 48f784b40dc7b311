// Package motor registers the controller command surface with the shell.
package motor

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/vesc.go/pkg/cli/sh"
	"github.com/robotalks/vesc.go/pkg/vesc"
)

// setterCmd builds a shell command for a one-value setter.
func setterCmd(name, alias, help string, set func(*vesc.Interface, float64) error) ishell.Cmd {
	return ishell.Cmd{
		Name:    name,
		Aliases: []string{alias},
		Help:    help,
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			val, err := strconv.ParseFloat(c.Args[0], 64)
			if err != nil {
				c.Err(fmt.Errorf("invalid VALUE: %v", err))
				return
			}
			sh.DoSend(c, func(drv *vesc.Interface) error {
				return set(drv, val)
			})
		}),
	}
}

var (
	// FWVersionCmd requests the firmware version.
	FWVersionCmd = ishell.Cmd{
		Name:    "fw",
		Aliases: []string{"version"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoSend(c, (*vesc.Interface).RequestFWVersion)
		}),
	}

	// StateCmd requests the controller state values.
	StateCmd = ishell.Cmd{
		Name:    "state",
		Aliases: []string{"values"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoSend(c, (*vesc.Interface).RequestState)
		}),
	}

	// DutyCmd sets the PWM duty cycle.
	DutyCmd = setterCmd("duty", "dc", "DUTY(-1..1)", (*vesc.Interface).SetDutyCycle)
	// CurrentCmd sets the motor current.
	CurrentCmd = setterCmd("current", "cur", "CURRENT(A)", (*vesc.Interface).SetCurrent)
	// BrakeCmd sets the braking current.
	BrakeCmd = setterCmd("brake", "b", "CURRENT(A)", (*vesc.Interface).SetBrake)
	// SpeedCmd sets the motor speed.
	SpeedCmd = setterCmd("speed", "rpm", "SPEED(RPM)", (*vesc.Interface).SetSpeed)
	// PositionCmd sets the rotor position.
	PositionCmd = setterCmd("position", "pos", "POSITION(degrees)", (*vesc.Interface).SetPosition)
	// ServoCmd sets the servo output.
	ServoCmd = setterCmd("servo", "s", "POSITION(0..1)", (*vesc.Interface).SetServo)
)

func init() {
	sh.AddCmds(
		&FWVersionCmd,
		&StateCmd,
		&DutyCmd,
		&CurrentCmd,
		&BrakeCmd,
		&SpeedCmd,
		&PositionCmd,
		&ServoCmd,
	)
}
