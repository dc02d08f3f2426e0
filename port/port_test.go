package port

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsAreStableStrings(t *testing.T) {
	cases := map[string]error{
		"pin_not_one_hot": ErrNotOneHot,
		"unknown_pin":     ErrUnknownPin,
	}
	for want, e := range cases {
		if e == nil || e.Error() != want {
			t.Fatalf("error %q mismatch: got %#v", want, e)
		}
	}
}

func TestPinNames(t *testing.T) {
	for i, p := range Pins {
		assert.True(t, p.OneHot())
		assert.Equal(t, i, p.Index())
		got, err := ParsePin(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	assert.Equal(t, "P13", LED.String())
	assert.Equal(t, "0x3", (P8 | P9).String())
	assert.Equal(t, -1, Pin(0).Index())

	_, err := ParsePin("P7")
	assert.ErrorIs(t, err, ErrUnknownPin)
}

func TestRegisterSetClear(t *testing.T) {
	var r Register
	r.Set(P8)
	r.Set(P10)
	assert.Equal(t, P8|P10, r.Bits())
	assert.True(t, r.IsSet(P8|P10))

	r.Clear(P8)
	assert.Equal(t, P10, r.Bits())
	assert.False(t, r.IsSet(P8))

	r.Clear(P12)
	assert.Equal(t, P10, r.Bits(), "clearing a low bit leaves others alone")
}

type write struct {
	pin string
	val byte
}

type recorder struct {
	writes []write
	fail   error
}

func (r *recorder) DigitalWrite(pin string, val byte) error {
	r.writes = append(r.writes, write{pin, val})
	return r.fail
}

func TestGPIORoutesBits(t *testing.T) {
	rec := &recorder{}
	g := NewGPIO(rec)
	require.NoError(t, g.Map(P8, Line{Name: "LED1", Pin: 8}))
	require.NoError(t, g.Map(P9, Line{Name: "LED2", Pin: 10, Invert: true}))
	assert.ErrorIs(t, g.Map(P8|P9, Line{}), ErrNotOneHot)
	assert.Equal(t, P8|P9, g.Mapped())

	g.Set(P8 | P9 | P13)
	g.Clear(P8)
	assert.Equal(t, []write{
		{"8", HIGH},
		{"10", LOW},
		{"8", LOW},
	}, rec.writes)
	assert.NoError(t, g.Err())
}

func TestGPIOKeepsFirstError(t *testing.T) {
	first := errors.New("first")
	rec := &recorder{fail: first}
	g := NewGPIO(rec)
	require.NoError(t, g.Map(P11, Line{Name: "LED", Pin: 16}))

	g.Set(P11)
	rec.fail = errors.New("second")
	g.Clear(P11)
	assert.ErrorIs(t, g.Err(), first)
	assert.Len(t, rec.writes, 2)
}
