package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999999, "1000.0K"},
		{2300000, "2.3M"},
		{4100000000, "4.1B"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatNumber(c.in), "FormatNumber(%d)", c.in)
	}
}
