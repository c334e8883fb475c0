package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// BodyHTML is written verbatim after Body, typically a serialized host
	// tree snapshot.
	BodyHTML string

	// Context is passed to components rendered from Body.
	Context any

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.)
	Links []LinkTag

	// Scripts contains script tags. Deferred and async scripts go in the
	// head, the rest at the end of the body.
	Scripts []ScriptTag

	// Styles contains inline CSS styles
	Styles []string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Content   string
	Property  string // OpenGraph
	HTTPEquiv string
	Charset   string
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string
	Href        string
	Type        string
	Sizes       string
	CrossOrigin string
	Media       string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Type   string
	Defer  bool
	Async  bool
	Module bool // type="module"
	Inline string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if err := r.renderDocumentStart(w, page); err != nil {
		return err
	}
	if err := r.renderBody(w, page); err != nil {
		return err
	}
	return r.renderDocumentEnd(w, page)
}

func (r *Renderer) renderDocumentStart(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	return r.renderHead(w, page)
}

func (r *Renderer) renderBody(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body, page.Context); err != nil {
		return err
	}
	if page.BodyHTML != "" {
		if _, err := io.WriteString(w, page.BodyHTML); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderDocumentEnd(w io.Writer, page PageData) error {
	for _, script := range page.Scripts {
		if !script.Defer && !script.Async {
			if err := renderScriptTag(w, script); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	head := "<head>\n" +
		`  <meta charset="utf-8">` + "\n" +
		`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n"
	if _, err := io.WriteString(w, head); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, meta := range page.Meta {
		err := writeTag(w, "meta",
			"charset", meta.Charset,
			"name", meta.Name,
			"property", meta.Property,
			"http-equiv", meta.HTTPEquiv,
			"content", meta.Content,
		)
		if err != nil {
			return err
		}
	}

	for _, link := range page.Links {
		err := writeTag(w, "link",
			"rel", link.Rel,
			"href", link.Href,
			"type", link.Type,
			"sizes", link.Sizes,
			"crossorigin", link.CrossOrigin,
			"media", link.Media,
		)
		if err != nil {
			return err
		}
	}

	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	for _, script := range page.Scripts {
		if script.Defer || script.Async {
			if err := renderScriptTag(w, script); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// writeTag writes a void head element with the non-empty name/value pairs.
func writeTag(w io.Writer, tag string, pairs ...string) error {
	if _, err := fmt.Fprintf(w, "  <%s", tag); err != nil {
		return err
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, pairs[i], escapeAttr(pairs[i+1])); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ">\n")
	return err
}

// renderScriptTag renders a script element.
func renderScriptTag(w io.Writer, script ScriptTag) error {
	typ := script.Type
	if script.Module {
		typ = "module"
	}
	if _, err := io.WriteString(w, "  <script"); err != nil {
		return err
	}
	for _, attr := range [][2]string{{"src", script.Src}, {"type", typ}} {
		if attr[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, attr[0], escapeAttr(attr[1])); err != nil {
			return err
		}
	}
	for _, flag := range []struct {
		name string
		on   bool
	}{{"defer", script.Defer}, {"async", script.Async}} {
		if !flag.on {
			continue
		}
		if _, err := fmt.Fprintf(w, " %s", flag.name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, ">%s</script>\n", script.Inline)
	return err
}
