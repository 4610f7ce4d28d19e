package pagesmith_test

import (
	"testing"

	"github.com/fwojciec/pagesmith"
	"github.com/stretchr/testify/assert"
)

func TestIsGreeting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want bool
	}{
		{"hello", true},
		{"  Hi  ", true},
		{"hey, can you help?", true},
		{"Good morning team", true},
		{"greetings", true},
		{"hiking club website", false},
		{"hello!", false},
		{"build me a site saying hello", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, pagesmith.IsGreeting(tt.msg))
		})
	}
}

func TestGreetingResponse(t *testing.T) {
	t.Parallel()

	t.Run("uses the picked index", func(t *testing.T) {
		t.Parallel()

		got := pagesmith.GreetingResponse(func(int) int { return 2 })

		assert.Equal(t, pagesmith.GreetingResponses[2], got)
	})

	t.Run("wraps out of range indexes", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pagesmith.GreetingResponses[1], pagesmith.GreetingResponse(func(n int) int { return n + 1 }))
		assert.Equal(t, pagesmith.GreetingResponses[3], pagesmith.GreetingResponse(func(int) int { return -1 }))
	})

	t.Run("defaults to the first reply", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pagesmith.GreetingResponses[0], pagesmith.GreetingResponse(nil))
	})
}
