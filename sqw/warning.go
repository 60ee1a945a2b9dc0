package sqw

import "fmt"

// Warning is a non-fatal diagnostic accumulated while opening a file or
// reading a data block — the Go analogue of the reference implementation's
// warnings.warn calls.
// Warning is never an error: callers that want strict behavior should
// inspect Warnings() themselves rather than expect these to surface as
// returned errors.
type Warning struct {
	// Block names the ("level1", "level2") block the warning concerns,
	// or the empty BlockName for a file-header-level warning.
	Block   BlockName
	Message string
}

func (w Warning) String() string {
	if w.Block == (BlockName{}) {
		return w.Message
	}

	return fmt.Sprintf("%s: %s", w.Block, w.Message)
}

func headerWarning(msg string) Warning {
	return Warning{Message: msg}
}

func blockWarning(name BlockName, msg string) Warning {
	return Warning{Block: name, Message: msg}
}
