package statement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
		{name: "lowercase", input: "SELECT * FROM T", want: "select * from t"},
		{name: "collapse", input: "  SELECT\n\t*\r\n  FROM   t ;  ", want: "select * from t ;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestIsDDL(t *testing.T) {
	require.True(t, IsDDL("create table foo (a int)"))
	require.True(t, IsDDL("alter table foo add column b int"))
	require.False(t, IsDDL("select * from t"))
	require.False(t, IsDDL("create index idx on foo (a)"))
	// Substring match, not keyword match.
	require.True(t, IsDDL("select recreate tablespace from t"))
}

func TestIsCreateTable(t *testing.T) {
	require.True(t, IsCreateTable("create table foo (a int)"))
	require.False(t, IsCreateTable("alter table foo add column b int"))
}

func TestExtractTableName(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "create table   Users (id int)", want: "Users", wantOK: true},
		{input: "create table users(id int)", want: "users", wantOK: true},
		{input: "create table users", want: "users", wantOK: true},
		{input: "create table if not exists users (id int)", want: "if", wantOK: true},
		{input: "create table ", wantOK: false},
		{input: "select * from users", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExtractTableName(tt.input)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	pos := &types.Position{Line: 3}
	s := NewAt("CREATE TABLE Accounts (\n  id INT\n);", pos)

	require.Equal(t, "create table accounts ( id int );", s.Text())
	require.Equal(t, "CREATE TABLE Accounts (\n  id INT\n);", s.Raw())
	require.Equal(t, pos, s.Position())
	require.True(t, s.IsDDL())
	require.True(t, s.IsCreateTable())
	require.Equal(t, len(s.Text()), s.Len())

	name, ok := s.TableName()
	require.True(t, ok)
	require.Equal(t, "accounts", name)
}

func TestNewQuery(t *testing.T) {
	s := New("select 1")
	require.False(t, s.IsDDL())
	require.False(t, s.IsCreateTable())
	require.Nil(t, s.Position())

	_, ok := s.TableName()
	require.False(t, ok)
}

func TestLenCountsBytes(t *testing.T) {
	s := New("select 'café'")
	require.Equal(t, 14, s.Len())
	require.Equal(t, 13, len([]rune(s.Text())))
}
