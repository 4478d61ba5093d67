package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "empty input",
			raw:  "",
			want: map[string]string{},
		},
		{
			name: "single mapped alias",
			raw:  "lucyna=staff-uuid-7",
			want: map[string]string{"lucyna": "staff-uuid-7"},
		},
		{
			name: "alias without identifier stays known",
			raw:  "lucyna=staff-uuid-7,marta=",
			want: map[string]string{"lucyna": "staff-uuid-7", "marta": ""},
		},
		{
			name: "alias without equals sign",
			raw:  "marta",
			want: map[string]string{"marta": ""},
		},
		{
			name: "whitespace is trimmed",
			raw:  " lucyna = staff-uuid-7 , marta = ",
			want: map[string]string{"lucyna": "staff-uuid-7", "marta": ""},
		},
		{
			name: "trailing comma ignored",
			raw:  "lucyna=staff-uuid-7,",
			want: map[string]string{"lucyna": "staff-uuid-7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAliases(tt.raw))
		})
	}
}
