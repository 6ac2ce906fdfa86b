//go:build headless

package audio

// NewTone returns a Silent beeper in headless builds.
func NewTone(hz int, volume float64) (Beeper, error) {
	return Silent{}, nil
}
