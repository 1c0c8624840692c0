package conformal

import (
	"math/rand"

	"github.com/LacombeLouis/MAPIE/pkg/errors"
)

// BlockBootstrap resamples contiguous index blocks with replacement,
// preserving local temporal structure. The index range is cut into NBlocks
// contiguous blocks; each of the NResamplings folds draws NBlocks blocks
// with replacement as its training set (duplicates included) and holds out
// the rows whose block was never drawn.
//
// Unlike partitioning plans, a row may be out-of-fold in many resamplings,
// or in none: the engine records which via the inclusion mask and warns when
// a row is never held out.
type BlockBootstrap struct {
	NResamplings int
	NBlocks      int
	Seed         int64
}

// Split implements Splitter.
func (b *BlockBootstrap) Split(n int) ([]Fold, error) {
	if b.NResamplings < 1 {
		return nil, errors.NewValidationError("n_resamplings", "must be at least 1", b.NResamplings)
	}
	if b.NBlocks < 1 {
		return nil, errors.NewValidationError("n_blocks", "must be at least 1", b.NBlocks)
	}
	if b.NBlocks > n {
		return nil, errors.NewValidationError("n_blocks", "cannot exceed the number of observations", b.NBlocks)
	}

	blocks := contiguousBlocks(n, b.NBlocks)
	rng := rand.New(rand.NewSource(b.Seed))

	folds := make([]Fold, b.NResamplings)
	for r := 0; r < b.NResamplings; r++ {
		drawn := make([]bool, b.NBlocks)
		var train []int
		for d := 0; d < b.NBlocks; d++ {
			pick := rng.Intn(b.NBlocks)
			drawn[pick] = true
			train = append(train, blocks[pick]...)
		}

		var val []int
		for blk, used := range drawn {
			if !used {
				val = append(val, blocks[blk]...)
			}
		}
		folds[r] = Fold{Train: train, Val: val}
	}
	return folds, nil
}

// Name implements Splitter.
func (b *BlockBootstrap) Name() string { return "blockbootstrap" }

// contiguousBlocks cuts [0, n) into k contiguous blocks; the first n % k
// blocks carry one extra row.
func contiguousBlocks(n, k int) [][]int {
	blocks := make([][]int, k)
	perBlock := n / k
	remainder := n % k

	idx := 0
	for b := 0; b < k; b++ {
		size := perBlock
		if b < remainder {
			size++
		}
		block := make([]int, size)
		for i := range block {
			block[i] = idx + i
		}
		blocks[b] = block
		idx += size
	}
	return blocks
}
