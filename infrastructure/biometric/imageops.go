package biometric

import (
	"image"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// grayscale converts an image to a row-major luminance matrix with
// values in [0, 255].
func grayscale(img image.Image) [][]float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		row := make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601 luma weights over 16-bit channels
			row[x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
		}
		gray[y] = row
	}
	return gray
}

// meanBrightness is the average luminance of the matrix.
func meanBrightness(gray [][]float64) float64 {
	if len(gray) == 0 || len(gray[0]) == 0 {
		return 0
	}
	var sum float64
	for _, row := range gray {
		for _, v := range row {
			sum += v
		}
	}
	return sum / float64(len(gray)*len(gray[0]))
}

// sobelMeanMagnitude computes the mean gradient magnitude over the
// interior pixels. Higher values indicate richer surface texture.
func sobelMeanMagnitude(gray [][]float64) float64 {
	height := len(gray)
	if height < 3 {
		return 0
	}
	width := len(gray[0])
	if width < 3 {
		return 0
	}

	var sum float64
	var count int
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := -gray[y-1][x-1] + gray[y-1][x+1] +
				-2*gray[y][x-1] + 2*gray[y][x+1] +
				-gray[y+1][x-1] + gray[y+1][x+1]
			gy := -gray[y-1][x-1] - 2*gray[y-1][x] - gray[y-1][x+1] +
				gray[y+1][x-1] + 2*gray[y+1][x] + gray[y+1][x+1]
			sum += math.Sqrt(gx*gx + gy*gy)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// laplacianVariance measures sharpness as the variance of the 4-way
// Laplacian response. Blurry images score low.
func laplacianVariance(gray [][]float64) float64 {
	height := len(gray)
	if height < 3 {
		return 0
	}
	width := len(gray[0])
	if width < 3 {
		return 0
	}

	responses := make([]float64, 0, (height-2)*(width-2))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			lap := gray[y-1][x] + gray[y+1][x] + gray[y][x-1] + gray[y][x+1] - 4*gray[y][x]
			responses = append(responses, lap)
		}
	}
	if len(responses) == 0 {
		return 0
	}
	return stat.Variance(responses, nil)
}

// glareFraction is the share of pixels whose HSV value channel exceeds
// the threshold, a proxy for specular reflection off screens and
// glossy prints.
func glareFraction(img image.Image, threshold float64) float64 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	var bright int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			v := math.Max(float64(r), math.Max(float64(g), float64(b))) / 257.0
			if v > threshold {
				bright++
			}
		}
	}
	return float64(bright) / float64(total)
}

// moireFraction runs a 2D FFT over the luminance matrix and reports
// the share of spectrum pixels whose log magnitude sits more than two
// standard deviations above the mean. Strong periodic peaks betray a
// re-captured screen or print.
func moireFraction(gray [][]float64) float64 {
	height := len(gray)
	if height < 2 {
		return 0
	}
	width := len(gray[0])
	if width < 2 {
		return 0
	}

	// Row-wise then column-wise 1D transforms compose the 2D FFT.
	rows := make([][]complex128, height)
	rowFFT := fourier.NewCmplxFFT(width)
	for y := 0; y < height; y++ {
		row := make([]complex128, width)
		for x := 0; x < width; x++ {
			row[x] = complex(gray[y][x], 0)
		}
		rows[y] = rowFFT.Coefficients(nil, row)
	}

	colFFT := fourier.NewCmplxFFT(height)
	column := make([]complex128, height)
	spectrum := make([]float64, 0, height*width)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			column[y] = rows[y][x]
		}
		transformed := colFFT.Coefficients(nil, column)
		for y := 0; y < height; y++ {
			magnitude := 20 * math.Log(cmplxAbs(transformed[y])+1)
			spectrum = append(spectrum, magnitude)
		}
	}

	mean, std := stat.MeanStdDev(spectrum, nil)
	cutoff := mean + 2*std

	var peaks int
	for _, v := range spectrum {
		if v > cutoff {
			peaks++
		}
	}
	return float64(peaks) / float64(len(spectrum))
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
