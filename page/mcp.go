// CLAUDE:SUMMARY Registers the footer MCP tools: compose a page with the footer, render the fallback footer.
package page

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/footer/dom"
	"github.com/hazyhaar/footer/footer"
	"github.com/hazyhaar/footer/fragment"
	"github.com/hazyhaar/footer/kit"
)

// RegisterMCP registers the footer tools on an MCP server.
func (h *Handler) RegisterMCP(srv *mcp.Server) {
	h.registerComposeTool(srv)
	h.registerFallbackTool(srv)
}

// endpointMiddleware is applied to every footer tool.
func (h *Handler) endpointMiddleware(name string) kit.Middleware {
	return kit.Chain(kit.Logging(h.logger, name))
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- footer_compose ---

type composeRequest struct {
	HTML         string `json:"html"`
	PagePath     string `json:"page_path,omitempty"`
	FragmentHTML string `json:"fragment_html,omitempty"`
}

type composeResponse struct {
	HTML    string         `json:"html"`
	Outcome footer.Outcome `json:"outcome"`
	Style   bool           `json:"style"`
	Status  int            `json:"status,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (h *Handler) registerComposeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "footer_compose",
		Description: "Mount the shared footer into an HTML page. Returns the composed page and what was mounted (fetched, no_footer, fallback).",
		InputSchema: inputSchema(map[string]any{
			"html":          map[string]any{"type": "string", "description": "Full HTML page"},
			"page_path":     map[string]any{"type": "string", "description": "Page path used to resolve the fragment (default /index.html)"},
			"fragment_html": map[string]any{"type": "string", "description": "Use this fragment instead of the configured one"},
		}, []string{"html"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*composeRequest)
		if strings.TrimSpace(r.HTML) == "" {
			return nil, errors.New("html is required")
		}

		doc, err := dom.ParseString(r.HTML)
		if err != nil {
			return nil, err
		}

		var src fragment.Source
		if r.FragmentHTML != "" {
			src = fragment.Static([]byte(r.FragmentHTML))
		} else {
			pagePath := r.PagePath
			if pagePath == "" {
				pagePath = "/index.html"
			}
			if src, err = h.cfg.Source(h.publicURL+pagePath, h.static, h.logger); err != nil {
				return nil, err
			}
		}

		res := h.loader(src).Load(ctx, doc)
		out := &composeResponse{
			HTML:    doc.String(),
			Outcome: res.Outcome,
			Style:   res.Style,
			Status:  res.Status,
		}
		if res.Err != nil {
			out.Error = res.Err.Error()
		}
		return out, nil
	}

	kit.RegisterMCPTool(srv, tool,
		h.endpointMiddleware(tool.Name)(endpoint),
		kit.DecodeJSON[composeRequest]())
}

// --- footer_fallback ---

type fallbackRequest struct {
	Year int `json:"year,omitempty"`
}

func (h *Handler) registerFallbackTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "footer_fallback",
		Description: "Render the built-in fallback footer for a year (default: current year).",
		InputSchema: inputSchema(map[string]any{
			"year": map[string]any{"type": "integer", "description": "Copyright year"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*fallbackRequest)
		if r.Year == 0 {
			r.Year = h.now().Year()
		}
		n := footer.BuildFallback(r.Year, h.cfg.Fallback)
		return map[string]string{"html": dom.RenderNode(n)}, nil
	}

	kit.RegisterMCPTool(srv, tool,
		h.endpointMiddleware(tool.Name)(endpoint),
		kit.DecodeJSON[fallbackRequest]())
}
