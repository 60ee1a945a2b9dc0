package sqw

import (
	"io"

	"github.com/orcaman/writerseeker"
)

// NewMemorySink returns an in-memory io.WriteSeeker suitable for Build,
// for callers that want a written SQW file without touching disk. The
// returned func yields a fresh io.ReadSeeker over everything written so
// far, ready to hand to Open; writerseeker.Reader backs it with a
// bytes.Reader, which satisfies io.ReadSeeker even though the library's
// own signature only promises io.Reader.
func NewMemorySink() (io.WriteSeeker, func() io.ReadSeeker) {
	ws := &writerseeker.WriterSeeker{}
	return ws, func() io.ReadSeeker {
		return ws.Reader().(io.ReadSeeker)
	}
}
