// Package serial opens the serial link to the camera module.
package serial

import (
	"fmt"

	"github.com/pkg/term"
)

// DefaultBaud is the baud rate of the camera firmware.
const DefaultBaud = 230400

// Port is an opened serial port in raw mode.
type Port struct {
	*term.Term
	Name string
}

// Open opens the device in raw mode at the given baud rate.
func Open(name string, baud int) (*Port, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	t, err := term.Open(name, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s error: %v", name, err)
	}
	return &Port{Term: t, Name: name}, nil
}

// WriteByte sends a single byte.
func (p *Port) WriteByte(b byte) error {
	_, err := p.Write([]byte{b})
	return err
}

// Close restores the terminal settings and closes the port.
func (p *Port) Close() error {
	if err := p.Term.Restore(); err != nil {
		p.Term.Close()
		return err
	}
	return p.Term.Close()
}
