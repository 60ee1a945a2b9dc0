// Package section defines the low-level binary structures that open an
// SQW v4 file: the fixed-shape FileHeader and the Block Allocation Table
// that follows it.
//
// # File layout
//
//	FileHeader
//	  prog_name:char-array  prog_version:f64  sqw_type:u32  n_dims:u32
//	BAT
//	  bat_size:u32  n_blocks:u32  entries:[BlockDescriptor; n_blocks]
//	payloads
//	  one contiguous, non-overlapping run of bytes per descriptor, in
//	  descriptor order
//
// Both FileHeader and BAT are read and written through a stream.Reader/
// stream.Writer rather than a fixed-size byte slice, since prog_name and
// every block name are variable-length character arrays — there is no
// constant header size to slice on, unlike a packed fixed-width header.
package section
