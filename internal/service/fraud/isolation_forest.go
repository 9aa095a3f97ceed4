package fraud

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

const eulerGamma = 0.5772156649015329

// IsolationForest is an ensemble of random isolation trees.
// Scores follow the usual convention: higher means more normal.
type IsolationForest struct {
	NumTrees      int
	MaxSamples    int
	Contamination float64
	Seed          uint64

	trees      []*isoNode
	sampleSize int
	offset     float64
}

type isoNode struct {
	feature   int
	threshold float64
	left      *isoNode
	right     *isoNode
	size      int
}

func (n *isoNode) isLeaf() bool {
	return n.left == nil
}

// NewIsolationForest creates an unfitted forest.
func NewIsolationForest(numTrees, maxSamples int, contamination float64, seed uint64) *IsolationForest {
	return &IsolationForest{
		NumTrees:      numTrees,
		MaxSamples:    maxSamples,
		Contamination: contamination,
		Seed:          seed,
	}
}

// Fit grows the trees on sub-samples of x.
func (f *IsolationForest) Fit(x [][]float64) error {
	n := len(x)
	if n == 0 {
		return fmt.Errorf("isolation forest: empty input")
	}
	if f.NumTrees <= 0 || f.MaxSamples <= 0 {
		return fmt.Errorf("isolation forest: trees and max samples must be positive")
	}
	if f.Contamination <= 0 || f.Contamination > 0.5 {
		return fmt.Errorf("isolation forest: contamination must be in (0, 0.5], got %v", f.Contamination)
	}

	f.sampleSize = min(f.MaxSamples, n)
	heightLimit := int(math.Ceil(math.Log2(float64(max(f.sampleSize, 2)))))
	rng := rand.New(rand.NewPCG(f.Seed, f.Seed^0x5851f42d4c957f2d))

	f.trees = make([]*isoNode, f.NumTrees)
	for t := range f.trees {
		idx := rng.Perm(n)[:f.sampleSize]
		f.trees[t] = growTree(x, idx, 0, heightLimit, rng)
	}

	train, err := f.ScoreSamples(x)
	if err != nil {
		return err
	}
	f.offset = percentile(train, 100*f.Contamination)
	return nil
}

func growTree(x [][]float64, idx []int, depth, limit int, rng *rand.Rand) *isoNode {
	if depth >= limit || len(idx) <= 1 {
		return &isoNode{size: len(idx)}
	}

	cols := len(x[idx[0]])
	candidates := make([]int, 0, cols)
	lows := make([]float64, cols)
	highs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		lo, hi := x[idx[0]][j], x[idx[0]][j]
		for _, i := range idx[1:] {
			lo = math.Min(lo, x[i][j])
			hi = math.Max(hi, x[i][j])
		}
		lows[j], highs[j] = lo, hi
		if hi > lo {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return &isoNode{size: len(idx)}
	}

	feature := candidates[rng.IntN(len(candidates))]
	lo, hi := lows[feature], highs[feature]
	threshold := lo + rng.Float64()*(hi-lo)
	if threshold <= lo {
		threshold = lo + (hi-lo)/2
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &isoNode{
		feature:   feature,
		threshold: threshold,
		size:      len(idx),
		left:      growTree(x, left, depth+1, limit, rng),
		right:     growTree(x, right, depth+1, limit, rng),
	}
}

// averagePathLength is the expected path length of an unsuccessful BST search over n points.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
	}
}

func pathLength(row []float64, node *isoNode, depth int) float64 {
	for !node.isLeaf() {
		if row[node.feature] < node.threshold {
			node = node.left
		} else {
			node = node.right
		}
		depth++
	}
	return float64(depth) + averagePathLength(node.size)
}

// ScoreSamples returns the negated anomaly score for each row.
func (f *IsolationForest) ScoreSamples(x [][]float64) ([]float64, error) {
	if f.trees == nil {
		return nil, fmt.Errorf("isolation forest: not fitted")
	}
	norm := averagePathLength(f.sampleSize)
	if norm == 0 {
		norm = 1
	}

	out := make([]float64, len(x))
	for i, row := range x {
		var total float64
		for _, tree := range f.trees {
			total += pathLength(row, tree, 0)
		}
		mean := total / float64(len(f.trees))
		out[i] = -math.Pow(2, -mean/norm)
	}
	return out, nil
}

// DecisionFunction shifts ScoreSamples so the contamination quantile sits at zero.
func (f *IsolationForest) DecisionFunction(x [][]float64) ([]float64, error) {
	scores, err := f.ScoreSamples(x)
	if err != nil {
		return nil, err
	}
	for i := range scores {
		scores[i] -= f.offset
	}
	return scores, nil
}

// Predict labels rows -1 for outliers and 1 for inliers.
func (f *IsolationForest) Predict(x [][]float64) ([]int, error) {
	decision, err := f.DecisionFunction(x)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(decision))
	for i, d := range decision {
		if d < 0 {
			labels[i] = -1
		} else {
			labels[i] = 1
		}
	}
	return labels, nil
}

// percentile uses linear interpolation between closest ranks.
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
