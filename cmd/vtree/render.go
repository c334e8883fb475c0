package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/export"
	"github.com/vango-dev/vtree/pkg/host/memdom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vtree"
)

type renderOptions struct {
	pretty  bool
	shallow bool
	page    bool
	host    bool
	out     string
	name    string
}

func renderCmd(g *globals) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [demo]",
		Short: "Render a demo tree to HTML",
		Long: `Render a demo tree to HTML on stdout or to an export target.

By default components are mounted against the string renderer. With
--host the tree is patched into an in-memory document instead and the
document's markup is printed.

Examples:
  vtree render counter
  vtree render app --pretty
  vtree render app --shallow
  vtree render app --page --out ./dist
  vtree render app --page --out s3://bucket/previews/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "app"
			if len(args) == 1 {
				name = args[0]
			}
			return runRender(cmd.Context(), g, name, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output")
	cmd.Flags().BoolVar(&opts.shallow, "shallow", false, "Do not render components, print them as tags")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Wrap the output in a complete HTML document")
	cmd.Flags().BoolVar(&opts.host, "host", false, "Patch an in-memory document instead of string rendering")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Export target directory or s3:// URL (default from config, else stdout)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Exported object name (default: <demo>.html)")

	return cmd
}

func runRender(ctx context.Context, g *globals, name string, opts renderOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := g.load()
	if err != nil {
		return err
	}
	d, err := lookupDemo(name)
	if err != nil {
		return err
	}
	logger := g.logger(cfg)

	html, err := renderDemo(cfg, d, opts, logger)
	if err != nil {
		return err
	}
	if opts.page {
		var b strings.Builder
		err := render.NewRenderer(render.RendererConfig{}).RenderPage(&b, render.PageData{
			Title:    d.Name,
			BodyHTML: html,
		})
		if err != nil {
			return err
		}
		html = b.String()
	}

	target := opts.out
	if target == "" {
		target = cfg.Export.Target
	}
	if target == "" || target == "-" {
		_, err := io.WriteString(g.stdout, html)
		return err
	}

	sink, err := export.Open(ctx, target)
	if err != nil {
		return errors.New("E160").WithDetail(err.Error()).Wrap(err)
	}
	object := opts.name
	if object == "" {
		object = d.Name + ".html"
	}
	loc, err := sink.Write(ctx, object, strings.NewReader(html), export.ContentTypeHTML)
	if err != nil {
		return errors.New("E161").Wrap(err)
	}
	logger.Info("exported", "demo", d.Name, "location", loc, "bytes", len(html))
	success(g.stderr, "Wrote %s", loc)
	return nil
}

func renderDemo(cfg *config.Config, d demo.Demo, opts renderOptions, logger *slog.Logger) (string, error) {
	root := d.Root()

	switch {
	case opts.shallow:
		return render.RenderShallow(root), nil

	case opts.host:
		doc, err := memdom.NewDocument(`<div id="root"><div></div></div>`)
		if err != nil {
			return "", err
		}
		container, err := doc.QuerySelector("#root")
		if err != nil {
			return "", err
		}
		rt := vtree.NewRuntime(cfg.RuntimeOptions(logger)...)
		if _, err := rt.Patch(container.Children()[0], root, nil); err != nil {
			return "", err
		}
		return container.InnerHTML() + "\n", nil

	default:
		r := render.NewRenderer(render.RendererConfig{
			Pretty:  opts.pretty,
			Options: cfg.RuntimeOptions(logger),
		})
		html, err := r.RenderToString(root, nil)
		if err != nil {
			return "", err
		}
		if !opts.pretty {
			html += "\n"
		}
		return html, nil
	}
}
