package cpu

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	FUZZ_MAX_TICKS = 256
)

func FuzzCpu(f *testing.F) {
	f.Add(int64(1), int64(0), int64(0), int64(0), int64(0))
	f.Add(int64(1002), int64(4), int64(3), int64(4), int64(33))
	f.Add(int64(3), int64(0), int64(4), int64(0), int64(-7))
	f.Add(int64(109), int64(-5), int64(204), int64(0), int64(0))
	f.Add(int64(1105), int64(1), int64(-1), int64(0), int64(0))
	f.Add(int64(21101), int64(1<<40), int64(7), int64(1<<50), int64(0))
	f.Add(int64(109), int64(math.MinInt64), int64(204), int64(-1), int64(0))

	f.Fuzz(func(t *testing.T, a, b, c, d int64, input int64) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Load(Program{a, b, c, d, 99})
		cpu.AddInput(input)

		for range FUZZ_MAX_TICKS {
			ip := cpu.Ip()
			event, err := cpu.Tick()
			if err != nil {
				known := errors.Is(err, ErrOpcodeInvalid) ||
					errors.Is(err, ErrModeInvalid) ||
					errors.Is(err, ErrAddressNegative) ||
					errors.Is(err, ErrRelativeBaseRange)
				assert.True(known, err)
				assert.Equal(ip, cpu.Ip())
				return
			}
			switch event {
			case EVENT_HALT:
				assert.Equal(STATE_HALTED, cpu.State())
				return
			case EVENT_INPUT:
				assert.Equal(ip, cpu.Ip())
				assert.Equal(0, cpu.InputLen())
				return
			case EVENT_OUTPUT:
				_, ok := cpu.TakeOutput()
				assert.True(ok)
			}
		}
	})
}
