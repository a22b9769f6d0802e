package ihex

import "fmt"

// RecordError reports a malformed line of an Intel HEX file.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// VerifyError reports a byte that did not read back as written.
type VerifyError struct {
	Address  uint32
	Expected byte
	Actual   byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("verify failed at 0x%05X: expected 0x%02X, got 0x%02X",
		e.Address, e.Expected, e.Actual)
}
