package sh

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/camview/pkg/camview"
	"github.com/robotalks/camview/pkg/display"
)

// Session is the camera session operated by the shell.
type Session interface {
	HandleKey(camview.Key) camview.KeyResult
	Screen() *display.Bitmap
	Status() camview.Status
}

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell   *ishell.Shell
	Session Session
}

const (
	shellKey = "$shell"
	prompt   = "camview > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		keyCmd(camview.KeyUp, "u"),
		keyCmd(camview.KeyDown, "d"),
		keyCmd(camview.KeyLeft, "l"),
		keyCmd(camview.KeyRight, "r"),
		&SnapCmd,
		&ShowCmd,
		&StatusCmd,
	}
)

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell.
func New(session Session) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:   ishell.New(),
		Session: session,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Run runs the shell. With args, only the command is executed.
func (s *Shell) Run(args ...string) {
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

// Close stops the shell.
func (s *Shell) Close() {
	s.Shell.Close()
}

// PressKey sends a key to the session and formats the result.
func (s *Shell) PressKey(key camview.Key) (string, error) {
	res := s.Session.HandleKey(key)
	if res.Err != nil {
		return "", res.Err
	}
	if s.OutputJSON {
		out, err := json.Marshal(map[string]string{"key": key.String(), "path": res.Path})
		return string(out), err
	}
	if res.Path != "" {
		return "Saved " + res.Path, nil
	}
	return "OK", nil
}

// ShowScreen renders the last drawn screen as text.
func (s *Shell) ShowScreen() string {
	return s.Session.Screen().String()
}

// FormatStatus prints Status into friendly string for display.
func (s *Shell) FormatStatus(st camview.Status) (string, error) {
	if s.OutputJSON {
		out, err := json.Marshal(struct {
			Connected bool   `json:"connected"`
			State     string `json:"state"`
			Records   uint64 `json:"records"`
			Discarded uint64 `json:"discarded"`
			Clamped   uint64 `json:"clamped"`
			Buffered  int    `json:"buffered"`
			Dropped   uint64 `json:"dropped"`
		}{
			st.Connected, st.State.String(),
			st.Stats.Records, st.Stats.Discarded, st.Stats.Clamped,
			st.Buffered, st.Dropped,
		})
		return string(out), err
	}
	var w bytes.Buffer
	if st.Connected {
		fmt.Fprintln(&w, "connected")
	} else {
		fmt.Fprintln(&w, "waiting for camera")
	}
	fmt.Fprintf(&w, "decoder:   %s\n", st.State)
	fmt.Fprintf(&w, "records:   %d\n", st.Stats.Records)
	fmt.Fprintf(&w, "discarded: %d\n", st.Stats.Discarded)
	fmt.Fprintf(&w, "clamped:   %d\n", st.Stats.Clamped)
	fmt.Fprintf(&w, "buffered:  %d (dropped %d)", st.Buffered, st.Dropped)
	return w.String(), nil
}

func printResult(c *ishell.Context, out string, err error) {
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(out)
}

func keyCmd(key camview.Key, alias string) *ishell.Cmd {
	return &ishell.Cmd{
		Name:    key.String(),
		Aliases: []string{alias},
		Help:    "press " + key.String(),
		Func: func(c *ishell.Context) {
			out, err := ShellFrom(c).PressKey(key)
			printResult(c, out, err)
		},
	}
}

var (
	// SnapCmd presses Ok which saves a snapshot.
	SnapCmd = ishell.Cmd{
		Name:    "snap",
		Aliases: []string{"ok", "s"},
		Help:    "save a snapshot",
		Func: func(c *ishell.Context) {
			out, err := ShellFrom(c).PressKey(camview.KeyOk)
			printResult(c, out, err)
		},
	}

	// ShowCmd prints the current screen.
	ShowCmd = ishell.Cmd{
		Name: "show",
		Help: "print the screen",
		Func: func(c *ishell.Context) {
			c.Println(ShellFrom(c).ShowScreen())
		},
	}

	// StatusCmd prints the session status.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "print decoder status",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			out, err := s.FormatStatus(s.Session.Status())
			printResult(c, out, err)
		},
	}
)
