package serialport

import (
	"fmt"
	"slices"

	"go.bug.st/serial"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

// Options are the connection settings of a port.
type Options struct {
	BaudRate int     `json:"baudRate"`
	DataBits int     `json:"dataBits,omitempty"`
	Parity   string  `json:"parity,omitempty"`
	StopBits float64 `json:"stopBits,omitempty"`
}

var parities = map[string]serial.Parity{
	"":      serial.NoParity,
	"none":  serial.NoParity,
	"odd":   serial.OddParity,
	"even":  serial.EvenParity,
	"mark":  serial.MarkParity,
	"space": serial.SpaceParity,
}

// Mode converts the options to a serial mode.
func (o Options) Mode() (*serial.Mode, error) {
	if o.BaudRate <= 0 {
		return nil, fmt.Errorf("baud rate must be positive: %w", errutils.ErrValidation)
	}
	parity, ok := parities[o.Parity]
	if !ok {
		return nil, fmt.Errorf("unknown parity %q: %w", o.Parity, errutils.ErrValidation)
	}

	mode := &serial.Mode{BaudRate: o.BaudRate, DataBits: 8, Parity: parity, StopBits: serial.OneStopBit}
	if o.DataBits != 0 {
		if !slices.Contains([]int{5, 6, 7, 8}, o.DataBits) {
			return nil, fmt.Errorf("unsupported data bits %d: %w", o.DataBits, errutils.ErrValidation)
		}
		mode.DataBits = o.DataBits
	}
	switch o.StopBits {
	case 0, 1:
	case 1.5:
		mode.StopBits = serial.OnePointFiveStopBits
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("unsupported stop bits %v: %w", o.StopBits, errutils.ErrValidation)
	}
	return mode, nil
}

// Equal compares options after applying defaults.
func (o Options) Equal(other Options) bool {
	return o.normalized() == other.normalized()
}

func (o Options) normalized() Options {
	if o.DataBits == 0 {
		o.DataBits = 8
	}
	if o.Parity == "" {
		o.Parity = "none"
	}
	if o.StopBits == 0 {
		o.StopBits = 1
	}
	return o
}
