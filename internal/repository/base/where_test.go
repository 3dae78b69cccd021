package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere(t *testing.T) {
	var w Where
	assert.Equal(t, "", w.SQL())

	w.Add("l.status = ?", "NEW").Add("l.city_id = ?", int64(1))
	limit := w.Arg(50)

	assert.Equal(t, " WHERE l.status = $1 AND l.city_id = $2", w.SQL())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"NEW", int64(1), 50}, w.Args())
}
