// Package sh provides the ishell backed interactive shell for the driver.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/vesc.go/pkg/vesc"
	"github.com/robotalks/vesc.go/pkg/vesc/msgs"
)

// Shell provides ishell backed interactive access to one controller.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	Device      string

	Shell *ishell.Shell
	Drv   *vesc.Interface
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	device     = "/dev/ttyACM0"

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
		&StatusCmd,
	}
)

func init() {
	if val := os.Getenv("VESC_DEVICE"); val != "" {
		device = val
	}
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.StringVar(&device, "device", device, "Serial device of the controller.")
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Device:      device,

		Shell: ishell.New(),
	}
	s.Drv = vesc.New(
		vesc.HandlePacketFunc(s.printPacket),
		vesc.HandleErrorFunc(func(diag string) {
			s.Shell.Printf("! %s\n", diag)
		}),
	)
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

func (s *Shell) printPacket(msg msgs.Message) {
	if s.OutputJSON {
		out, err := json.Marshal(msg)
		if err != nil {
			s.Shell.Printf("! encode: %v\n", err)
			return
		}
		s.Shell.Println(string(out))
		return
	}
	s.Shell.Printf("%s %+v\n", reflect.TypeOf(msg).Name(), msg)
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps a command func requiring a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if !ShellFrom(c).Drv.IsConnected() {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// DoSend runs one driver call and reports the outcome.
func DoSend(c *ishell.Context, fn func(*vesc.Interface) error) {
	if err := fn(ShellFrom(c).Drv); err != nil {
		c.Err(err)
	}
}

// Connect opens the device.
func (s *Shell) Connect(dev string) error {
	if err := s.Drv.Connect(dev); err != nil {
		return err
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", dev))
	return nil
}

// Disconnect closes the current connection.
func (s *Shell) Disconnect() error {
	err := s.Drv.Disconnect()
	s.Shell.SetPrompt(unconnectedPrompt)
	return err
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Drv.Close()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// ConnectCmd connects the controller.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[DEVICE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			dev := s.Device
			if len(c.Args) > 0 {
				dev = c.Args[0]
			}
			if err := s.Connect(dev); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects the controller.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Disconnect(); err != nil {
				c.Err(err)
			}
		},
	}

	// StatusCmd reports the connection state.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "",
		Func: func(c *ishell.Context) {
			if ShellFrom(c).Drv.IsConnected() {
				c.Println("connected")
			} else {
				c.Println("disconnected")
			}
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New().Run(flag.Args()...)
}
