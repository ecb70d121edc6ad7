package carmen

import "fmt"

// DeckSize is the number of cards in a Marseille deck.
const DeckSize = 78

// maxMixInputs bounds how many integers the mixer accepts.
const maxMixInputs = 10

// DefaultBase is the persistent energy base used when the caller
// supplies none.
var DefaultBase = []int64{3, 1, 4, 1, 5, 9, 2, 6, 5}

// Mix folds up to ten integers into one non-negative value with an
// avalanche-style hash. It is deterministic across runs and platforms
// and is not cryptographic.
func Mix(nums ...int64) (int64, error) {
	if len(nums) == 0 {
		return 0, fmt.Errorf("carmen: mix needs at least 1 integer")
	}
	if len(nums) > maxMixInputs {
		return 0, fmt.Errorf("carmen: mix accepts at most %d integers, got %d", maxMixInputs, len(nums))
	}

	var h uint64 = 0x9E3779B9
	for _, n := range nums {
		x := uint64(n)
		h ^= x + 0x9E3779B97F4A7C15 + (h << 6) + (h >> 2)
		h *= 0xBF58476D1CE4E5B9
		h ^= h >> 27
	}
	return int64(h & 0x7FFFFFFFFFFFFFFF), nil
}

// DrawIndex combines the persistent base with the user's pick and maps
// the mix onto a card index in [0, DeckSize).
func DrawIndex(base []int64, pick int64) (int, error) {
	nums := make([]int64, 0, len(base)+1)
	nums = append(nums, base...)
	nums = append(nums, pick)

	mix, err := Mix(nums...)
	if err != nil {
		return 0, err
	}
	return int(mix % DeckSize), nil
}

// Upright reports whether the card is shown as-is. Odd draws are
// rotated 90 degrees clockwise.
func Upright(index int) bool {
	return index%2 == 0
}
