package blit

import (
	"strconv"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// fontDesc is the parsed form of a font descriptor string.
type fontDesc struct {
	Style  string // "normal" or "italic"
	Weight string // "normal" or "bold"
	SizePx float64
	Family string
}

// defaultFontDesc matches the defaults used when composing descriptors:
// normal weight, normal style, family Arial.
func defaultFontDesc() fontDesc {
	return fontDesc{Style: "normal", Weight: "normal", SizePx: 16, Family: "Arial"}
}

// composeFontDesc builds a font descriptor string of the form
// "<style> <weight> <size>px <family>".
func composeFontDesc(style, weight string, sizePx float64, family string) string {
	if style == "" {
		style = "normal"
	}
	if weight == "" {
		weight = "normal"
	}
	if family == "" {
		family = "Arial"
	}
	var b strings.Builder
	b.WriteString(style)
	b.WriteByte(' ')
	b.WriteString(weight)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(sizePx, 'g', -1, 64))
	b.WriteString("px ")
	b.WriteString(family)
	return b.String()
}

// parseFontDesc parses a descriptor string. Unknown tokens before the size
// are ignored; anything after the size is the family. A missing or
// malformed size keeps the default.
func parseFontDesc(desc string) fontDesc {
	d := defaultFontDesc()
	fields := strings.Fields(desc)

	sizeIdx := -1
	for i, f := range fields {
		if strings.HasSuffix(f, "px") {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64); err == nil && v > 0 {
				d.SizePx = v
				sizeIdx = i
				break
			}
		}
	}

	pre := fields
	if sizeIdx >= 0 {
		pre = fields[:sizeIdx]
		if sizeIdx+1 < len(fields) {
			d.Family = strings.Join(fields[sizeIdx+1:], " ")
		}
	}
	for _, f := range pre {
		switch strings.ToLower(f) {
		case "italic", "oblique":
			d.Style = "italic"
		case "bold", "bolder":
			d.Weight = "bold"
		case "600", "700", "800", "900":
			d.Weight = "bold"
		}
	}
	return d
}

// ttf returns the embedded Go font data matching the descriptor's weight and
// style. The family name is advisory only: the software surface always
// renders with the Go font family, substituting for whatever family the
// caller asked for.
func (d fontDesc) ttf() []byte {
	bold := d.Weight == "bold"
	italic := d.Style == "italic"
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// variant returns a stable cache key for the descriptor's weight/style pair.
func (d fontDesc) variant() string {
	return d.Weight + "/" + d.Style
}
