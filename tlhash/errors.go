package tlhash

import "fmt"

// InputSizeError is returned by [Hasher.HashInner] implementations
// when a child digest does not match the hasher's digest size.
type InputSizeError struct {
	Got, Want int
}

func (e InputSizeError) Error() string {
	return fmt.Sprintf("digest input was %d bytes, want %d", e.Got, e.Want)
}
