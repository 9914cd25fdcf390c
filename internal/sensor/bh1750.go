package sensor

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// BH1750 opcodes.
const (
	bh1750PowerDown      byte = 0x00
	bh1750PowerOn        byte = 0x01
	bh1750ContinuousHRes byte = 0x10
)

// DefaultBH1750Addr is the address with the ADDR pin low.
const DefaultBH1750Addr uint16 = 0x23

// BH1750 is a ROHM BH1750 ambient light sensor running in continuous
// high resolution mode.
type BH1750 struct {
	d *i2c.Dev
}

// NewBH1750 powers up the sensor at addr on b and starts continuous
// measurement.
func NewBH1750(b i2c.Bus, addr uint16) (*BH1750, error) {
	if addr == 0 {
		addr = DefaultBH1750Addr
	}
	s := &BH1750{d: &i2c.Dev{Bus: b, Addr: addr}}
	for _, op := range []byte{bh1750PowerOn, bh1750ContinuousHRes} {
		if err := s.d.Tx([]byte{op}, nil); err != nil {
			return nil, fmt.Errorf("bh1750: init: %w", err)
		}
	}
	return s, nil
}

// Lux returns the latest measurement in lux.
func (s *BH1750) Lux() (int, error) {
	buf := make([]byte, 2)
	if err := s.d.Tx(nil, buf); err != nil {
		return 0, fmt.Errorf("bh1750: read: %w", err)
	}
	raw := int(buf[0])<<8 | int(buf[1])
	return raw * 10 / 12, nil
}

// Halt powers the sensor down.
func (s *BH1750) Halt() error {
	return s.d.Tx([]byte{bh1750PowerDown}, nil)
}

func (s *BH1750) String() string {
	return fmt.Sprintf("BH1750{%s}", s.d)
}

var _ conn.Resource = &BH1750{}
