package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		text      string
		cmd       string
		args      []string
		isCommand bool
	}{
		{"!прогресс", "прогресс", nil, true},
		{".прогресс", "прогресс", nil, true},
		{"/login пароль", "login", []string{"пароль"}, true},
		{"!расход 250.50 еда", "расход", []string{"250.50", "еда"}, true},
		{"!РАСХОД 100", "расход", []string{"100"}, true},
		{"  !записи  ", "записи", nil, true},
		{"! прогресс", "прогресс", nil, true},
		{"прогресс", "", nil, false},
		{"просто текст", "", nil, false},
		{"!", "", nil, false},
		{"", "", nil, false},
	}

	for _, tt := range tests {
		cmd, args, ok := p.ParseCommand(tt.text)
		assert.Equal(t, tt.isCommand, ok, tt.text)
		assert.Equal(t, tt.cmd, cmd, tt.text)
		assert.Equal(t, tt.args, args, tt.text)
	}
}
