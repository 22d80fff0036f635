package exitcodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForVerdict(t *testing.T) {
	assert.Equal(t, Success, ForVerdict(true))
	assert.Equal(t, TestFailure, ForVerdict(false))
}
