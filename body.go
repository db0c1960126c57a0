package outbound

import "strings"

// BodyKind discriminates the three body representations.
type BodyKind int

const (
	// BodyFixed is a single pre-rendered string.
	BodyFixed BodyKind = iota
	// BodyChunks is an ordered sequence of string chunks.
	BodyChunks
	// BodyStreamed defers content generation to a producer callback.
	BodyStreamed
)

// Producer generates body content at iteration time. It receives the
// response itself as the writable sink and calls Write for each chunk it
// wants to emit.
type Producer func(*Response)

// Body is the tagged representation of response content. Exactly one of the
// case fields is meaningful, selected by Kind.
type Body struct {
	Kind     BodyKind
	Content  string
	Chunks   []string
	Producer Producer
}

// FixedBody returns a body holding one pre-rendered string.
func FixedBody(content string) Body {
	return Body{Kind: BodyFixed, Content: content}
}

// ChunkedBody returns a body holding an ordered sequence of chunks.
func ChunkedBody(chunks ...string) Body {
	return Body{Kind: BodyChunks, Chunks: chunks}
}

// StreamedBody returns a body that generates content through the given
// producer at iteration time.
func StreamedBody(producer Producer) Body {
	return Body{Kind: BodyStreamed, Producer: producer}
}

func (b Body) streamed() bool {
	return b.Kind == BodyStreamed
}

// contents returns the concatenated content of a non-streamed body.
func (b Body) contents() string {
	switch b.Kind {
	case BodyFixed:
		return b.Content
	case BodyChunks:
		return strings.Join(b.Chunks, "")
	}
	return ""
}

func (b Body) empty() bool {
	if b.Kind == BodyStreamed {
		return b.Producer == nil
	}
	return b.contents() == ""
}

// Body returns the current body.
func (r *Response) Body() Body {
	return r.body
}

// SetBody replaces the body.
func (r *Response) SetBody(body Body) {
	r.body = body
}

// OnComplete registers a hook invoked with the response once Each has
// finished emitting all chunks.
func (r *Response) OnComplete(hook func(*Response)) {
	r.onComplete = hook
}

// Write emits one chunk. During and after Each it forwards immediately to
// the armed sink; before any Each it appends to the buffered body instead.
func (r *Response) Write(chunk string) {
	if r.writer != nil {
		r.writer(chunk)
		return
	}
	switch r.body.Kind {
	case BodyFixed:
		r.body = ChunkedBody(r.body.Content, chunk)
	case BodyChunks:
		r.body.Chunks = append(r.body.Chunks, chunk)
	default:
		r.body = ChunkedBody(chunk)
	}
}

// Each emits the body to fn, one chunk at a time and in order. A streamed
// body has its producer invoked once with the response armed as the sink.
// Afterwards the sink stays armed for later direct Write calls, and the
// completion hook fires if one is registered.
func (r *Response) Each(fn func(chunk string)) {
	if r.body.Kind == BodyStreamed {
		r.writer = fn
		if r.body.Producer != nil {
			r.body.Producer(r)
		}
	} else {
		switch r.body.Kind {
		case BodyFixed:
			fn(r.body.Content)
		case BodyChunks:
			for _, chunk := range r.body.Chunks {
				fn(chunk)
			}
		}
	}
	r.writer = fn
	if r.onComplete != nil {
		r.onComplete(r)
	}
}
