package scenario

import "math"

// stream produces the next value of a parameter each time it is called.
type stream func() float64

func constant(c float64) stream {
	return func() float64 {
		return c
	}
}

func ramp(height float64, length int) stream {
	var cycle int
	return func() float64 {
		h := height * float64(cycle) / float64(length)
		if cycle < length {
			cycle++
		}
		return h
	}
}

func (f stream) vga(gain stream) stream {
	return func() float64 {
		return f() * gain()
	}
}

func (f stream) scale(amt float64) stream {
	return f.vga(constant(amt))
}

func (f stream) offset(amt float64) stream {
	return func() float64 {
		old := f()
		return old + amt
	}
}

func (f stream) quantize(mult float64) stream {
	return func() float64 {
		r := f() / mult
		if r < 0 {
			return math.Ceil(r) * mult
		}
		return math.Floor(r) * mult
	}
}

func (f stream) limit(min, max float64) stream {
	return func() float64 {
		v := f()
		if v < min {
			v = min
		} else if v > max {
			v = max
		}
		return v
	}
}
