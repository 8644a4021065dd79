package migrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"manasa.shop/internal/migrate"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "two statements",
			in:   "create table a(id text);\ncreate table b(id text);",
			want: []string{"create table a(id text);", "\ncreate table b(id text);"},
		},
		{
			name: "semicolon inside string literal",
			in:   "insert into t(v) values ('a;b');",
			want: []string{"insert into t(v) values ('a;b');"},
		},
		{
			name: "trailing statement without semicolon",
			in:   "create index i on t(v)",
			want: []string{"create index i on t(v)"},
		},
		{
			name: "blank input",
			in:   "   \n ",
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, migrate.SplitStatements(tc.in))
		})
	}
}
