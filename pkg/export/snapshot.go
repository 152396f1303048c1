// Package export renders static snapshots of the field to indicator
// mapping for sharing outside the terminal.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/fieldlens/fieldlens/pkg/engine"
	"github.com/fieldlens/fieldlens/pkg/model"
)

// SnapshotOptions controls mapping snapshot export behaviour.
type SnapshotOptions struct {
	Path     string                     // Output path; ".svg" appended when missing an extension
	Title    string                     // Optional title rendered in the summary block
	Index    *engine.Index              // Mapping to render
	Selected map[model.FieldID]struct{} // Fields to highlight as selected; may be nil
}

// SaveSnapshot renders the bipartite mapping as an SVG with fields in the
// left column and indicators in the right. Selected fields and the
// indicators they fully satisfy are highlighted.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Index == nil {
		return fmt.Errorf("index is required for snapshot export")
	}
	if opts.Index.FieldCount() == 0 {
		return fmt.Errorf("no mapping rows to export")
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if filepath.Ext(opts.Path) == "" {
		opts.Path = opts.Path + ".svg"
	} else if !strings.EqualFold(filepath.Ext(opts.Path), ".svg") {
		return fmt.Errorf("unsupported format %q (want .svg)", filepath.Ext(opts.Path))
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	return RenderSVG(file, opts)
}

// --- layout ----------------------------------------------------------------

const (
	marginX     = 40
	headerH     = 100
	nodeW       = 200
	nodeH       = 28
	nodeGap     = 10
	columnGap   = 280
	footerH     = 40
	maxLabelLen = 24
)

var (
	colorBackdrop   = color.RGBA{0x1a, 0x1b, 0x26, 0xff}
	colorHeaderBG   = color.RGBA{0x24, 0x28, 0x3b, 0xff}
	colorText       = color.RGBA{0xc0, 0xca, 0xf5, 0xff}
	colorSubtle     = color.RGBA{0x56, 0x5f, 0x89, 0xff}
	colorStroke     = color.RGBA{0x3b, 0x40, 0x61, 0xff}
	colorField      = color.RGBA{0x2a, 0x2e, 0x45, 0xff}
	colorSelected   = color.RGBA{0x7a, 0xa2, 0xf7, 0xff}
	colorComputable = color.RGBA{0x9e, 0xce, 0x6a, 0xff}
	colorPartial    = color.RGBA{0xe0, 0xaf, 0x68, 0xff}
	colorEdge       = color.RGBA{0x3b, 0x40, 0x61, 0xff}
	colorEdgeHot    = color.RGBA{0x7a, 0xa2, 0xf7, 0xff}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type nodeBox struct {
	x, y int
}

// RenderSVG writes the snapshot to w. Exposed separately so tests can
// render without touching the filesystem.
func RenderSVG(w io.Writer, opts SnapshotOptions) error {
	idx := opts.Index
	fields := idx.Fields()
	indicators := idx.Indicators()
	selected := opts.Selected
	if selected == nil {
		selected = map[model.FieldID]struct{}{}
	}

	byIndicator := engine.Derive(idx, selected)

	rows := len(fields)
	if len(indicators) > rows {
		rows = len(indicators)
	}
	width := marginX*2 + nodeW*2 + columnGap
	height := headerH + rows*(nodeH+nodeGap) + footerH

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, width-32, headerH-32, 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	title := opts.Title
	if title == "" {
		title = "field to indicator mapping"
	}
	canvas.Text(32, 44, title,
		fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 68, fmt.Sprintf("fields: %d  indicators: %d  edges: %d  selected: %d",
		idx.FieldCount(), idx.TotalIndicators(), idx.EdgeCount(), len(selected)),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	fieldPos := make(map[model.FieldID]nodeBox, len(fields))
	for i, f := range fields {
		fieldPos[f] = nodeBox{x: marginX, y: headerH + i*(nodeH+nodeGap)}
	}
	indicatorPos := make(map[model.IndicatorID]nodeBox, len(indicators))
	for i, ind := range indicators {
		indicatorPos[ind] = nodeBox{x: marginX + nodeW + columnGap, y: headerH + i*(nodeH+nodeGap)}
	}

	// Edges go under the nodes.
	for _, ind := range indicators {
		rec := idx.Record(ind)
		if rec == nil {
			continue
		}
		to := indicatorPos[ind]
		for _, f := range rec.Fields {
			from, ok := fieldPos[f]
			if !ok {
				continue
			}
			stroke := colorEdge
			if _, sel := selected[f]; sel {
				stroke = colorEdgeHot
			}
			canvas.Line(from.x+nodeW, from.y+nodeH/2, to.x, to.y+nodeH/2,
				fmt.Sprintf("stroke:%s;stroke-width:1.5", css(stroke)))
		}
	}

	for _, f := range fields {
		pos := fieldPos[f]
		fill := colorField
		textColor := colorText
		if _, sel := selected[f]; sel {
			fill = colorSelected
			textColor = colorBackdrop
		}
		canvas.Roundrect(pos.x, pos.y, nodeW, nodeH, 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(fill), css(colorStroke)))
		label := fmt.Sprintf("%s (%d)", truncate(string(f), maxLabelLen), idx.IndicatorCount(f))
		canvas.Text(pos.x+10, pos.y+19, label,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(textColor)))
	}

	for _, ind := range indicators {
		pos := indicatorPos[ind]
		comp := byIndicator[ind]
		fill := colorField
		switch {
		case comp.Computable():
			fill = colorComputable
		case len(comp.Satisfied) > 0:
			fill = colorPartial
		}
		textColor := colorText
		if fill != colorField {
			textColor = colorBackdrop
		}
		canvas.Roundrect(pos.x, pos.y, nodeW, nodeH, 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(fill), css(colorStroke)))
		label := fmt.Sprintf("%s %d/%d", truncate(string(ind), maxLabelLen),
			len(comp.Satisfied), len(comp.Satisfied)+len(comp.Missing))
		canvas.Text(pos.x+10, pos.y+19, label,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(textColor)))
	}

	canvas.End()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
