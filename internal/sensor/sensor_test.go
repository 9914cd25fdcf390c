package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

func TestINA260BusVoltage(t *testing.T) {
	t.Parallel()

	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x41, W: []byte{ina260BusVoltage}, R: []byte{0x0d, 0x20}},
			{Addr: 0x41, W: []byte{ina260BusVoltage}, R: []byte{0x00, 0x00}},
		},
		DontPanic: true,
	}
	s := NewINA260(pb, 0x41)

	v, err := s.BusVoltage()
	require.NoError(t, err)
	assert.Equal(t, 4200*physic.MilliVolt, v)
	assert.InDelta(t, 4.2, Volts(v), 1e-9)

	v, err = s.BusVoltage()
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, pb.Close())
}

func TestINA260ManufacturerID(t *testing.T) {
	t.Parallel()

	pb := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: DefaultINA260Addr, W: []byte{ina260MfgID}, R: []byte{0x54, 0x49}}},
		DontPanic: true,
	}
	id, err := NewINA260(pb, 0).ManufacturerID()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x5449), id)
}

func TestINA260BusError(t *testing.T) {
	t.Parallel()

	pb := &i2ctest.Playback{DontPanic: true}
	_, err := NewINA260(pb, 0).BusVoltage()
	assert.ErrorContains(t, err, "ina260")
}

func TestBH1750(t *testing.T) {
	t.Parallel()

	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultBH1750Addr, W: []byte{bh1750PowerOn}},
			{Addr: DefaultBH1750Addr, W: []byte{bh1750ContinuousHRes}},
			{Addr: DefaultBH1750Addr, R: []byte{0x01, 0x2c}},
			{Addr: DefaultBH1750Addr, R: []byte{0x00, 0x0c}},
			{Addr: DefaultBH1750Addr, W: []byte{bh1750PowerDown}},
		},
		DontPanic: true,
	}

	s, err := NewBH1750(pb, 0)
	require.NoError(t, err)

	lux, err := s.Lux()
	require.NoError(t, err)
	assert.Equal(t, 250, lux)

	lux, err = s.Lux()
	require.NoError(t, err)
	assert.Equal(t, 10, lux)

	require.NoError(t, s.Halt())
	require.NoError(t, pb.Close())
	assert.Contains(t, s.String(), "BH1750")
}

func TestBH1750InitFails(t *testing.T) {
	t.Parallel()

	pb := &i2ctest.Playback{DontPanic: true}
	_, err := NewBH1750(pb, 0)
	assert.ErrorContains(t, err, "bh1750: init")
}
