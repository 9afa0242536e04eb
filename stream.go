package funcrouter

import "iter"

// Stream is a lazy, possibly-infinite sequence of values. A stream is
// either single-valued (emits at most one item) or multi-valued (emits
// zero or more). Nothing is produced until the sequence returned by All
// is driven, and stopping the consumer stops the upstream pull.
//
// A Stream may or may not be restartable; that is a property of the
// underlying sequence, not of this type.
type Stream struct {
	single bool
	seq    iter.Seq2[any, error]
}

// Mono returns a single-valued stream that emits v.
func Mono(v any) *Stream {
	return MonoFunc(func() (any, error) { return v, nil })
}

// MonoFunc returns a single-valued stream whose item is produced by fn
// when the stream is driven.
func MonoFunc(fn func() (any, error)) *Stream {
	return &Stream{
		single: true,
		seq: func(yield func(any, error) bool) {
			yield(fn())
		},
	}
}

// Flux returns a multi-valued stream that emits the given values in order.
func Flux(values ...any) *Stream {
	return &Stream{
		seq: func(yield func(any, error) bool) {
			for _, v := range values {
				if !yield(v, nil) {
					return
				}
			}
		},
	}
}

// FluxSeq wraps an arbitrary sequence as a multi-valued stream. The
// sequence may be infinite.
func FluxSeq(seq iter.Seq2[any, error]) *Stream {
	return &Stream{seq: seq}
}

// Single reports whether the stream emits at most one item.
func (s *Stream) Single() bool { return s.single }

// All returns the underlying sequence. Items are produced only as the
// returned sequence is driven.
func (s *Stream) All() iter.Seq2[any, error] { return s.seq }

// Map returns a stream of the same cardinality that applies fn to each
// emitted item. The mapping is a pure 1:1 step: emission order is
// preserved, nothing is buffered, and fn runs only when the returned
// stream is driven. An upstream or mapping error is emitted in place of
// the item it belongs to.
func (s *Stream) Map(fn func(any) (any, error)) *Stream {
	return &Stream{
		single: s.single,
		seq: func(yield func(any, error) bool) {
			for v, err := range s.seq {
				if err != nil {
					if !yield(nil, err) {
						return
					}
					continue
				}
				if !yield(fn(v)) {
					return
				}
			}
		},
	}
}

// Collect drives the stream to completion and returns the emitted
// values. It stops at the first error. Do not call on infinite streams.
func (s *Stream) Collect() ([]any, error) {
	var out []any
	for v, err := range s.seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// First drives the stream until one item is produced. The second return
// reports whether an item was emitted at all.
func (s *Stream) First() (any, bool, error) {
	for v, err := range s.seq {
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	return nil, false, nil
}
