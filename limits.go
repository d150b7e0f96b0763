package pullxml

import (
	"fmt"

	"github.com/pkg/errors"
)

const defaultMaxInputSize = 64 << 20

func resolveMaxInputSize(value int64) (int64, error) {
	if value < 0 {
		return 0, errors.New("max input size must be >= 0")
	}
	if value == 0 {
		return defaultMaxInputSize, nil
	}
	return value, nil
}

func tooLargeMessage(limit int64) string {
	return fmt.Sprintf("input exceeds %d bytes", limit)
}
