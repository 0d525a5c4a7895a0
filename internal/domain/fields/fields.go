package fields

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRuntimeFormat = errors.New("invalid runtime format, expected \"<runtime> mins\"")

type MovieRuntime int32

func (m MovieRuntime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(fmt.Sprintf("%d mins", m))), nil
}

func (m *MovieRuntime) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidRuntimeFormat
	}
	value, found := strings.CutSuffix(unquoted, " mins")
	if !found {
		return ErrInvalidRuntimeFormat
	}
	runtime, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return ErrInvalidRuntimeFormat
	}
	*m = MovieRuntime(runtime)
	return nil
}

// AverageRating is a mean rating kept at one decimal of precision.
type AverageRating float64

// AverageOf returns sum/count rounded half away from zero to one decimal.
// Integer arithmetic keeps x.x5 cases exact. A zero count yields 0.
func AverageOf(sum, count int64) AverageRating {
	if count <= 0 {
		return 0
	}
	neg := sum < 0
	if neg {
		sum = -sum
	}
	tenths := (20*sum + count) / (2 * count)
	if neg {
		tenths = -tenths
	}
	return AverageRating(float64(tenths) / 10)
}

func (r AverageRating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r), 'f', 1, 64)), nil
}
