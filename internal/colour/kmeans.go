package colour

import (
	"image"
	"math"
	"math/rand"

	"github.com/anthonynsimon/bild/parallel"
)

const (
	defaultMaxIterations = 200
	defaultEpsilon       = 0.1
)

// KMeansExtractor implements the dominant-cluster strategy using k-means clustering.
type KMeansExtractor struct {
	seed          int64
	maxIterations int
	convergence   float64
}

// NewKMeansExtractor creates a new KMeansExtractor.
func NewKMeansExtractor(opts ExtractorOptions) *KMeansExtractor {
	e := &KMeansExtractor{
		seed:          opts.Seed,
		maxIterations: opts.MaxIterations,
		convergence:   opts.Epsilon,
	}
	if e.maxIterations <= 0 {
		e.maxIterations = defaultMaxIterations
	}
	if e.convergence <= 0 {
		e.convergence = defaultEpsilon
	}
	return e
}

// Extract partitions the pixels into count clusters and returns the centroid
// of the largest cluster as the sole candidate.
func (e *KMeansExtractor) Extract(img image.Image, count int) (Candidates, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	points, err := readPoints(img)
	if err != nil {
		return nil, err
	}

	// With no more distinct colours than clusters, the most frequent colour is the dominant one.
	if uniq := uniqueCounts(points); len(uniq.order) <= count {
		best := uniq.order[0]
		for _, p := range uniq.order[1:] {
			if uniq.counts[p] > uniq.counts[best] {
				best = p
			}
		}
		return Candidates{{
			Colour: best.rgb(),
			Weight: float64(uniq.counts[best]) / float64(len(points)),
		}}, nil
	}

	// #nosec G404 -- clustering initialisation, not security sensitive.
	rng := rand.New(rand.NewSource(e.seed))
	centroids, weights := e.kmeans(points, count, rng)

	dominant := 0
	for i := range weights {
		if weights[i] > weights[dominant] {
			dominant = i
		}
	}

	return Candidates{{
		Colour: centroids[dominant].rgb(),
		Weight: weights[dominant],
	}}, nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	return math.Sqrt(p.distanceSq(other))
}

func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

func (p point3D) rgb() RGB {
	return RGB{
		R: uint8(clamp(math.Round(p.R), 0, 255)),
		G: uint8(clamp(math.Round(p.G), 0, 255)),
		B: uint8(clamp(math.Round(p.B), 0, 255)),
	}
}

type uniqueSet struct {
	order  []point3D
	counts map[point3D]int
}

// uniqueCounts counts exact colours, keeping first-seen order.
func uniqueCounts(points []point3D) uniqueSet {
	u := uniqueSet{counts: make(map[point3D]int)}
	for _, p := range points {
		if _, seen := u.counts[p]; !seen {
			u.order = append(u.order, p)
		}
		u.counts[p]++
	}
	return u
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(points []point3D, k int, rng *rand.Rand) ([]point3D, []float64) {
	centroids := initializeCentroidsKMeansPlusPlus(points, k, rng)

	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}
	next := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		// Each worker writes a disjoint index range, so the result does not
		// depend on how many workers run.
		parallel.Line(len(points), func(start, end int) {
			for i := start; i < end; i++ {
				next[i] = findNearestCentroid(points[i], centroids)
			}
		})

		changed := 0
		for i := range next {
			if assignments[i] != next[i] {
				assignments[i] = next[i]
				changed++
			}
		}
		if changed == 0 {
			break
		}

		newCentroids := recalculateCentroids(points, assignments, centroids)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	parallel.Line(len(points), func(start, end int) {
		for i := start; i < end; i++ {
			assignments[i] = findNearestCentroid(points[i], centroids)
		}
	})

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	total := float64(len(assignments))
	for i := range weights {
		weights[i] /= total
	}

	return centroids, weights
}

// initializeCentroidsKMeansPlusPlus picks initial centroids with the k-means++ rule.
func initializeCentroidsKMeansPlusPlus(points []point3D, k int, rng *rand.Rand) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				if d := point.distanceSq(centroid); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist
			total += minDist
		}

		if total == 0 {
			// Every point coincides with a centroid; nudge a copy of the last one.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
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

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if d := point.distanceSq(centroid); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its points.
// An empty cluster keeps its previous position.
func recalculateCentroids(points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}

	return centroids
}
