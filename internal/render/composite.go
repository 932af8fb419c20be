package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
)

const headerHeight = 60

type tile struct {
	index int
	png   []byte
}

// composite tiles the panel PNGs under a title banner and encodes the result.
func composite(title string, tiles []tile, w, h int) ([]byte, error) {
	rows := (compositePanels + compositeColumns - 1) / compositeColumns
	canvas := image.NewRGBA(image.Rect(0, 0, w*compositeColumns, headerHeight+h*rows))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	header, err := titleBanner(title, canvas.Bounds().Dx())
	if err != nil {
		return nil, err
	}
	draw.Draw(canvas, header.Bounds(), header, image.Point{}, draw.Over)

	for _, t := range tiles {
		img, err := png.Decode(bytes.NewReader(t.png))
		if err != nil {
			return nil, fmt.Errorf("decoding panel %d: %w", t.index, err)
		}
		col, row := t.index%compositeColumns, t.index/compositeColumns
		origin := image.Pt(col*w, headerHeight+row*h)
		draw.Draw(canvas, image.Rectangle{Min: origin, Max: origin.Add(img.Bounds().Size())}, img, img.Bounds().Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encoding composite: %w", err)
	}
	return buf.Bytes(), nil
}

// titleBanner draws the figure heading with go-chart's raster renderer.
func titleBanner(title string, width int) (image.Image, error) {
	r, err := chart.PNG(width, headerHeight)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	r.SetFont(font)
	r.SetFontSize(20)
	r.SetFontColor(colorBlack)
	box := r.MeasureText(title)
	r.Text(title, (width-box.Width())/2, (headerHeight+box.Height())/2)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
