package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/dockpane/pkg/errors"
)

// Converter is the librsvg command ToPDF and ToPNG run. A bare name is
// looked up on PATH.
var Converter = "rsvg-convert"

const installHint = "brew install librsvg (macOS), apt install librsvg2-bin (Linux)"

// ToPDF converts an SVG drawing to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts an SVG drawing to PNG. Layouts are drawn at screen size,
// so scale 2 gives a sharp image on high-DPI displays.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return convert(ctx, svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

func convert(ctx context.Context, svg []byte, format string, extra ...string) ([]byte, error) {
	if len(svg) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "no svg to convert to %s", format)
	}
	bin, err := exec.LookPath(Converter)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeUnsupported, err, "%s output needs %s: %s", format, Converter, installHint)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "%s: %s", Converter, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
