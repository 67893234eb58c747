package deploy

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// checkSettled guards the batch tally. More settled objects than were dropped means
// the bookkeeping is broken: debug builds stop right there, release builds clamp
// and keep playing.
func checkSettled(logger *log.Logger, settled, expected int) int {
	if settled <= expected {
		return settled
	}
	if debugAssertions {
		panic(fmt.Sprintf("deploy: %d objects settled but only %d were dropped", settled, expected))
	}
	logger.Warn("settled count exceeds batch size", "settled", settled, "expected", expected)
	return expected
}
