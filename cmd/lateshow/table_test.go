package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/lateshow-api/internal/model"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(guestColumns, [][]string{{"1", "Michael J. Fox", "actor", "extra"}, {"2"}})

	assert.Contains(t, out, "Occupation")
	assert.Contains(t, out, "Michael J. Fox")
	assert.NotContains(t, out, "extra")
	assert.Equal(t, 6, strings.Count(out, "\n")+1)
	assert.Empty(t, renderTable(nil, nil))
}

func TestAppearanceRow(t *testing.T) {
	a := &model.Appearance{
		ID: 3, Rating: 4,
		Episode: &model.Episode{Number: 2, Date: "1/12/99"},
		Guest:   &model.Guest{Name: "Tracey Ullman"},
	}
	assert.Equal(t, []string{"3", "2", "1/12/99", "Tracey Ullman", "4/5"}, appearanceRow(a, 0))
}
