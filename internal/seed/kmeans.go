// Package seed derives primary and accent seed colours from an image.
package seed

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	// MinChroma is the chroma below which a cluster has no usable hue.
	MinChroma = 10.0
	// MinAccentDistance is the minimum hue separation between primary and accent.
	MinAccentDistance = 60.0
)

// Options tunes the clustering.
type Options struct {
	Clusters      int     // k
	MaxIterations int     // hard stop for Lloyd iterations
	MaxSamples    int     // pixels sampled on a grid
	Convergence   float64 // mean centroid movement (Lab) that ends iteration
	Seed          int64   // seeds k-means++ initialisation
}

// DefaultOptions returns the standard clustering options.
func DefaultOptions() Options {
	return Options{
		Clusters:      8,
		MaxIterations: 20,
		MaxSamples:    2000,
		Convergence:   0.5,
		Seed:          1,
	}
}

// Cluster is one dominant colour with its share of the sampled pixels.
type Cluster struct {
	Colour colour.LCH
	Weight float64
}

// Result holds the chosen seeds and the clusters they were chosen from,
// heaviest first.
type Result struct {
	Primary  colour.LCH
	Accent   colour.LCH
	Clusters []Cluster
}

// Extractor runs k-means over an image's pixels in CIE Lab.
type Extractor struct {
	opts   Options
	logger hclog.Logger
}

// NewExtractor creates an extractor. A nil logger discards output.
func NewExtractor(opts Options, logger hclog.Logger) *Extractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Extractor{opts: opts, logger: logger}
}

// Extract clusters img and picks primary and accent seeds. The primary is
// the heaviest cluster with chroma of at least MinChroma; the accent is the
// heaviest such cluster at least MinAccentDistance degrees of hue away, or
// the primary's complement when none qualifies.
func (e *Extractor) Extract(img image.Image) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if e.opts.Clusters < 1 || e.opts.Clusters > 256 {
		return nil, fmt.Errorf("cluster count must be between 1 and 256, got %d", e.opts.Clusters)
	}

	pixels := samplePixels(img, e.opts.MaxSamples)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no opaque pixels found in image")
	}

	clusters, err := e.cluster(pixels)
	if err != nil {
		return nil, err
	}

	res := &Result{Clusters: clusters}
	primaryIdx := -1
	for i, c := range clusters {
		if c.Colour.C >= MinChroma {
			primaryIdx = i
			break
		}
	}
	if primaryIdx < 0 {
		e.logger.Debug("no chromatic cluster, using heaviest", "chroma", clusters[0].Colour.C)
		primaryIdx = 0
	}
	res.Primary = clusters[primaryIdx].Colour

	accentIdx := -1
	for i, c := range clusters {
		if i == primaryIdx || c.Colour.C < MinChroma {
			continue
		}
		if HueDistance(c.Colour.H, res.Primary.H) >= MinAccentDistance {
			accentIdx = i
			break
		}
	}
	if accentIdx >= 0 {
		res.Accent = clusters[accentIdx].Colour
	} else {
		res.Accent = Complement(res.Primary)
		e.logger.Debug("no distinct accent cluster, using complement", "hue", res.Accent.H)
	}

	e.logger.Debug("extracted seeds",
		"primary", res.Primary.String(),
		"accent", res.Accent.String(),
		"clusters", len(clusters))

	return res, nil
}

// HueDistance returns the shortest angle between two hues, in [0, 180].
func HueDistance(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Complement rotates c's hue by 180 degrees.
func Complement(c colour.LCH) colour.LCH {
	c.H = math.Mod(c.H+180, 360)
	return c
}

// lab is a point in CIE Lab (D65).
type lab struct {
	L, A, B float64
}

func (p lab) distanceSq(o lab) float64 {
	dl, da, db := p.L-o.L, p.A-o.A, p.B-o.B
	return dl*dl + da*da + db*db
}

func (e *Extractor) cluster(pixels []colorful.Color) ([]Cluster, error) {
	// Few distinct colours: each one is its own cluster.
	counts := make(map[string]int)
	var order []colorful.Color
	for _, p := range pixels {
		hex := p.Hex()
		if counts[hex] == 0 {
			order = append(order, p)
		}
		counts[hex]++
	}
	if len(order) <= e.opts.Clusters {
		clusters := make([]Cluster, 0, len(order))
		for _, c := range order {
			lch, err := toLCH(c)
			if err != nil {
				return nil, err
			}
			clusters = append(clusters, Cluster{Colour: lch, Weight: float64(counts[c.Hex()]) / float64(len(pixels))})
		}
		sortClusters(clusters)
		return clusters, nil
	}

	points := make([]lab, len(pixels))
	for i, p := range pixels {
		l, a, b := p.Lab()
		points[i] = lab{L: l * 100, A: a * 100, B: b * 100}
	}

	centroids, weights := e.kmeans(points, e.opts.Clusters)

	clusters := make([]Cluster, 0, len(centroids))
	for i, c := range centroids {
		if weights[i] == 0 {
			continue
		}
		lch, err := toLCH(colorful.Lab(c.L/100, c.A/100, c.B/100).Clamped())
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, Cluster{Colour: lch, Weight: weights[i]})
	}
	sortClusters(clusters)
	return clusters, nil
}

// kmeans runs Lloyd's algorithm from a k-means++ start.
// Returns centroids and their weights (relative cluster sizes).
func (e *Extractor) kmeans(points []lab, k int) ([]lab, []float64) {
	rng := rand.New(rand.NewPCG(uint64(e.opts.Seed), 0)) // #nosec G404 - clustering, not security

	centroids := initCentroids(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.opts.MaxIterations; iter++ {
		changed := 0
		for i, p := range points {
			if nearest := nearestCentroid(p, centroids); assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		next := recalculate(rng, points, assignments, k)

		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].distanceSq(next[i]))
		}
		centroids = next

		if iter > 0 && (changed == 0 || movement/float64(k) < e.opts.Convergence) {
			e.logger.Trace("k-means converged", "iterations", iter+1)
			break
		}
	}

	// Final assignment against the last centroids.
	weights := make([]float64, k)
	for _, p := range points {
		weights[nearestCentroid(p, centroids)]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}

	return centroids, weights
}

// initCentroids picks k starting centroids with k-means++.
func initCentroids(rng *rand.Rand, points []lab, k int) []lab {
	centroids := make([]lab, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			best := math.MaxFloat64
			for _, c := range centroids {
				best = min(best, p.distanceSq(c))
			}
			distances[i] = best
			total += best
		}

		// Every point sits on a centroid; nudge a copy so k stays fixed.
		if total == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, lab{L: last.L + 0.1, A: last.A, B: last.B})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func nearestCentroid(p lab, centroids []lab) int {
	nearest := 0
	best := math.MaxFloat64
	for i, c := range centroids {
		if d := p.distanceSq(c); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

func recalculate(rng *rand.Rand, points []lab, assignments []int, k int) []lab {
	sums := make([]lab, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].L += p.L
		sums[c].A += p.A
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]lab, k)
	for i := range k {
		if counts[i] == 0 {
			// Empty cluster: restart it on a random point.
			centroids[i] = points[rng.IntN(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = lab{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n}
	}
	return centroids
}

// samplePixels collects opaque pixels, on a grid when the image is larger
// than maxSamples.
func samplePixels(img image.Image, maxSamples int) []colorful.Color {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if maxSamples <= 0 {
		maxSamples = total
	}

	step := 1
	if total > maxSamples {
		step = max(int(math.Ceil(math.Sqrt(float64(total)/float64(maxSamples)))), 1)
	}

	pixels := make([]colorful.Color, 0, min(total, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			px := img.At(x, y)
			if _, _, _, a := px.RGBA(); a < 0x8000 {
				continue
			}
			c, ok := colorful.MakeColor(px)
			if !ok {
				continue
			}
			pixels = append(pixels, c)
		}
	}
	return pixels
}

// toLCH routes a colour through its hex form so seeds use the same
// conversion as user-supplied hex input.
func toLCH(c colorful.Color) (colour.LCH, error) {
	return colour.ParseHex(c.Hex())
}

func sortClusters(clusters []Cluster) {
	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
}
