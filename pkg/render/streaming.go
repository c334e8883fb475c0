package render

import (
	"io"
	"net/http"
)

// StreamingRenderer renders pages to a writer in stages. When the writer is
// an http.Flusher, each stage is flushed as soon as it is written so the
// browser can start on the head while the body is still rendering.
type StreamingRenderer struct {
	*Renderer
	w     io.Writer
	flush func()
}

// NewStreamingRenderer creates a streaming renderer over w, typically an
// http.ResponseWriter.
func NewStreamingRenderer(w io.Writer, config RendererConfig) *StreamingRenderer {
	s := &StreamingRenderer{Renderer: NewRenderer(config), w: w, flush: func() {}}
	if f, ok := w.(http.Flusher); ok {
		s.flush = f.Flush
	}
	return s
}

// RenderPage renders a complete HTML document, flushing after the head,
// after the body content and at the end.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	stages := []func(io.Writer, PageData) error{
		s.renderDocumentStart,
		s.renderBody,
		s.renderDocumentEnd,
	}
	for _, stage := range stages {
		if err := stage(s.w, page); err != nil {
			return err
		}
		s.flush()
	}
	return nil
}
