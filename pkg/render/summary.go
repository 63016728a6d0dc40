package render

import (
	"gonum.org/v1/gonum/stat"
)

// Summary describes the result of a render: how much of the canvas was
// covered and how the written pixels are distributed.
type Summary struct {
	Pixels          int     // Canvas size in pixels
	Covered         int     // Pixels with a written depth
	Coverage        float64 // Covered / Pixels
	DepthMean       float64 // Mean depth of covered pixels
	DepthStdDev     float64
	DepthMin        float64
	DepthMax        float64
	LuminanceMean   float64 // Mean luma of covered pixels, [0, 255]
	LuminanceStdDev float64
}

// Summarize computes a Summary over the pixels whose depth was written.
func Summarize(r *Rasterizer) Summary {
	s := Summary{Pixels: len(r.Depth.Pix)}

	depths := make([]float64, 0, len(r.Depth.Pix)/4)
	lumas := make([]float64, 0, len(r.Depth.Pix)/4)
	for y := range r.Depth.Height {
		for x := range r.Depth.Width {
			if !r.Depth.Written(x, y) {
				continue
			}
			i := y*r.Depth.Width + x
			depths = append(depths, r.Depth.Pix[i])
			lumas = append(lumas, Luminance(r.Canvas.Pix[i]))
		}
	}

	s.Covered = len(depths)
	if s.Pixels > 0 {
		s.Coverage = float64(s.Covered) / float64(s.Pixels)
	}
	if s.Covered == 0 {
		return s
	}

	s.DepthMean, s.DepthStdDev = stat.MeanStdDev(depths, nil)
	s.LuminanceMean, s.LuminanceStdDev = stat.MeanStdDev(lumas, nil)
	s.DepthMin, s.DepthMax = depths[0], depths[0]
	for _, d := range depths[1:] {
		s.DepthMin = min(s.DepthMin, d)
		s.DepthMax = max(s.DepthMax, d)
	}
	if s.Covered == 1 {
		s.DepthStdDev, s.LuminanceStdDev = 0, 0
	}
	return s
}
