package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantsHelp(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"help"}, true},
		{[]string{"help", "punch"}, true},
		{[]string{"punch", "--help"}, true},
		{[]string{"records", "-h"}, true},
		{[]string{"records", "edit", "2026-01-05", "note", "help"}, false},
		{[]string{"punch", "note", "--", "--help"}, false},
		{[]string{"report", "export", "2026-01"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, wantsHelp(tt.args), "%v", tt.args)
	}
}
