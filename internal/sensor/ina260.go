package sensor

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// INA260 register map.
const (
	ina260BusVoltage uint8 = 0x02
	ina260MfgID      uint8 = 0xFE
)

// DefaultINA260Addr is the address with both address pins grounded.
const DefaultINA260Addr uint16 = 0x40

// ina260LSB is the bus voltage resolution.
const ina260LSB = 1250 * physic.MicroVolt

// INA260 reads the bus voltage of a TI INA260 power monitor. The badge has
// one on the battery and one on the charge input.
type INA260 struct {
	d *i2c.Dev
}

// NewINA260 returns a monitor at addr on b.
func NewINA260(b i2c.Bus, addr uint16) *INA260 {
	if addr == 0 {
		addr = DefaultINA260Addr
	}
	return &INA260{d: &i2c.Dev{Bus: b, Addr: addr}}
}

func (s *INA260) read16(reg uint8) (uint16, error) {
	buf := make([]byte, 2)
	if err := s.d.Tx([]byte{reg}, buf); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// BusVoltage returns the voltage on the monitored rail.
func (s *INA260) BusVoltage() (physic.ElectricPotential, error) {
	raw, err := s.read16(ina260BusVoltage)
	if err != nil {
		return 0, fmt.Errorf("ina260: read bus voltage: %w", err)
	}
	return physic.ElectricPotential(raw) * ina260LSB, nil
}

// ManufacturerID returns the manufacturer register, 0x5449 ("TI") on a
// genuine part.
func (s *INA260) ManufacturerID() (uint16, error) {
	id, err := s.read16(ina260MfgID)
	if err != nil {
		return 0, fmt.Errorf("ina260: read manufacturer id: %w", err)
	}
	return id, nil
}

// Halt implements conn.Resource. The monitor is free running so there is
// nothing to stop.
func (s *INA260) Halt() error {
	return nil
}

func (s *INA260) String() string {
	return fmt.Sprintf("INA260{%s}", s.d)
}

var _ conn.Resource = &INA260{}
