package evaluate

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
)

// ErrSplitTooSmall is returned when a split would leave either side empty.
var ErrSplitTooSmall = errors.New("not enough samples to split")

// Split partitions samples into a training and a held-out set using a seeded
// permutation. The held-out set receives ceil(testFraction*n) samples. The
// same seed and input always produce the same partition.
func Split(samples []classifier.Sample, testFraction float64, seed uint64) (train, test []classifier.Sample, err error) {
	if !(testFraction > 0 && testFraction < 1) {
		return nil, nil, fmt.Errorf("invalid test fraction %v (must be between 0 and 1, exclusive)", testFraction)
	}
	n := len(samples)
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest == 0 || nTest >= n {
		return nil, nil, fmt.Errorf("%w: %d samples with test fraction %v", ErrSplitTooSmall, n, testFraction)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // G404: reproducible partition, not security sensitive
	perm := rng.Perm(n)

	test = make([]classifier.Sample, 0, nTest)
	train = make([]classifier.Sample, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, samples[idx])
		} else {
			train = append(train, samples[idx])
		}
	}
	return train, test, nil
}
