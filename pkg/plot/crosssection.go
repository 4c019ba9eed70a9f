package plot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/pkg/errors"

	"github.com/edp1096/toy-fab/pkg/wafer"
)

var materialColors = map[wafer.Material]color.RGBA{
	wafer.Vacuum:      {0xFF, 0xFF, 0xFF, 0xFF},
	wafer.Silicon:     {0x80, 0x80, 0x80, 0xFF},
	wafer.Oxide:       {0x87, 0xCE, 0xEB, 0xFF},
	wafer.Nitride:     {0x90, 0xEE, 0x90, 0xFF},
	wafer.Barrier:     {0xFF, 0xD7, 0x00, 0xFF},
	wafer.CopperSeed:  {0xFF, 0x8C, 0x00, 0xFF},
	wafer.Copper:      {0xB8, 0x73, 0x33, 0xFF},
	wafer.Photoresist: {0xFF, 0x69, 0xB4, 0xFF},
}

// CrossSection rasterizes a material grid to a PNG. Each cell becomes
// a scale x scale pixel block; row 0 of the grid is the substrate so
// the image is flipped to put it at the bottom.
func CrossSection(path string, grid [][]wafer.Material, scale int) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return errors.New("empty grid")
	}
	if scale < 1 {
		scale = 1
	}

	rows, cols := len(grid), len(grid[0])
	img := image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c, ok := materialColors[grid[row][col]]
			if !ok {
				c = color.RGBA{0x00, 0x00, 0x00, 0xFF}
			}
			y0 := (rows - 1 - row) * scale
			x0 := col * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(x0+dx, y0+dy, c)
				}
			}
		}
	}

	buffer := bytes.NewBuffer(nil)
	if err := png.Encode(buffer, img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return writeFile(path, buffer.Bytes())
}
