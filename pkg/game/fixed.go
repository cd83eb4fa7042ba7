package game

// Fixed is a 16.16 fixed point number.
type Fixed int32

// Angle is a binary angle: the full uint32 range is one revolution.
type Angle uint32

const (
	FracBits       = 16
	FracUnit Fixed = 1 << FracBits
)

func FixedFromFloat(value float64) Fixed {
	return Fixed(value * float64(FracUnit))
}

func (f Fixed) Float() float64 {
	return float64(f) / float64(FracUnit)
}
