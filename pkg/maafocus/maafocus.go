// Package maafocus shows stitching progress on the MaaFramework client by
// running an empty node whose focus text is a small HTML status line.
package maafocus

import (
	"errors"
	"fmt"
	"html"

	"github.com/MaaXYZ/maa-framework-go/v4"
)

const nodeName = "_MAP_STITCHER_FOCUS_"

// Colours of the status line. The count turns green once every cell of the
// canvas holds a tile.
const (
	colorLabel    = "#00bfff"
	colorComplete = "#3cb371"
)

// ErrNilContext indicates the provided context is nil.
var ErrNilContext = errors.New("context is nil")

// Progress shows "label filled/total" on the client. label is escaped.
func Progress(ctx *maa.Context, label string, filled, total int) error {
	if ctx == nil {
		return ErrNilContext
	}

	pp := maa.NewPipeline()
	pp.AddNode(maa.NewNode(nodeName,
		maa.WithFocus(map[string]any{
			maa.EventNodeAction.Starting(): progressHTML(label, filled, total),
		}),
		maa.WithPreDelay(0),
		maa.WithPostDelay(0),
	))
	_, err := ctx.RunTask(nodeName, pp)
	return err
}

func progressHTML(label string, filled, total int) string {
	color := colorLabel
	if total > 0 && filled >= total {
		color = colorComplete
	}
	return fmt.Sprintf(
		`<div style="color: %s; font-weight: 500;">%s %d/%d</div>`,
		color, html.EscapeString(label), filled, total,
	)
}
