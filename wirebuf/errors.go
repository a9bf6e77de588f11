package wirebuf

import (
	"fmt"
	"reflect"
)

// DecodeError reports malformed wire data: a bad varint, a truncated byte
// array, invalid UTF-8. It is always fatal to the decode call that hit it.
type DecodeError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func decodeErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DecodeError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: at %d in (%d) %x", e.Msg, e.Err, e.Off, n, e.Data)
		} else {
			return fmt.Sprintf("%s: at %d in (%d) %x", e.Msg, e.Off, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: at %d in (%d) %x...%x", e.Msg, e.Err, e.Off, n, p, s)
		} else {
			return fmt.Sprintf("%s: at %d in (%d) %x...%x", e.Msg, e.Off, n, p, s)
		}
	}
}

// ConstructionError means no factory is known for a value type. It degrades
// the decode to an empty result and is logged, never returned to callers.
type ConstructionError struct {
	Type reflect.Type
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("no factory registered for object type %v", e.Type)
}
