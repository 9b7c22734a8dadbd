package utils

// Error immutable string-based error type, usable as a constant
type Error string

func (e Error) Error() string {
	return string(e)
}
