package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func texts(list []SingleSQL) []string {
	var out []string
	for _, sql := range list {
		out = append(out, sql.Text)
	}
	return out
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		input   string
		want    Dialect
		wantErr bool
	}{
		{input: "", want: DialectGeneric},
		{input: "generic", want: DialectGeneric},
		{input: "MySQL", want: DialectMySQL},
		{input: "mariadb", want: DialectMySQL},
		{input: "postgresql", want: DialectPostgres},
		{input: "pg", want: DialectPostgres},
		{input: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDialect(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDelimiterStatement(t *testing.T) {
	require.True(t, IsDelimiter("DELIMITER ;;"))
	require.True(t, IsDelimiter("  delimiter //\n"))
	require.False(t, IsDelimiter("select delimiter from t"))

	d, err := ExtractDelimiter("DELIMITER $$")
	require.NoError(t, err)
	require.Equal(t, "$$", d)

	_, err = ExtractDelimiter("select 1")
	require.Error(t, err)
}

func TestSplitGeneric(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		delimiter string
		want      []string
	}{
		{
			name:      "semicolons",
			statement: "select 1; select 2;\n\nselect 3",
			want:      []string{"select 1", "select 2", "select 3"},
		},
		{
			name:      "quoted delimiter",
			statement: "insert into t values ('a;b'); select \"x;y\" from `t;u`",
			want:      []string{"insert into t values ('a;b')", "select \"x;y\" from `t;u`"},
		},
		{
			name:      "custom delimiter",
			statement: "select 1; select 2 $$ select 3 $$",
			delimiter: "$$",
			want:      []string{"select 1; select 2", "select 3"},
		},
		{
			name:      "delimiter statement",
			statement: "DELIMITER //\ncreate procedure p() begin select 1; end//\nDELIMITER ;\nselect 2;",
			want:      []string{"create procedure p() begin select 1; end", "select 2"},
		},
		{
			name:      "quote inside line comment",
			statement: "-- the user's table\nselect * from a;\ninsert into b values (1);",
			want:      []string{"-- the user's table\nselect * from a", "insert into b values (1)"},
		},
		{
			name:      "delimiter inside block comment",
			statement: "/* don't; split */ select 1; select 2",
			want:      []string{"/* don't; split */ select 1", "select 2"},
		},
		{
			name:      "comment markers inside quotes",
			statement: "select '--', '/*' from t; select 2",
			want:      []string{"select '--', '/*' from t", "select 2"},
		},
		{
			name:      "delimiter statement after comment",
			statement: "-- procs\nDELIMITER //\nselect 1; select 2//",
			want:      []string{"select 1; select 2"},
		},
		{
			name:      "empty",
			statement: " ;\n; ",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, texts(SplitGeneric(tt.statement, tt.delimiter)))
		})
	}
}

func TestSplitGenericPositions(t *testing.T) {
	list := SplitGeneric("select 1;\n\n  select 2;", ";")
	require.Len(t, list, 2)
	require.Equal(t, int32(1), list[0].Start.Line)
	require.Equal(t, int32(0), list[0].Start.Column)
	require.Equal(t, int32(3), list[1].Start.Line)
	require.Equal(t, int32(2), list[1].Start.Column)
}

func TestSplitMySQL(t *testing.T) {
	list, err := SplitMySQL("SELECT 1;\nSELECT 'a;b' FROM t;\n-- trailing comment\n", ";")
	require.NoError(t, err)

	list = dropEmpty(list)
	require.Equal(t, []string{"SELECT 1", "SELECT 'a;b' FROM t"}, texts(list))
	require.Equal(t, int32(1), list[0].Start.Line)
	require.Equal(t, int32(2), list[1].Start.Line)
}

func TestSplitMySQLBlocks(t *testing.T) {
	statement := "CREATE PROCEDURE p() BEGIN SELECT 1; SELECT 2; END; SELECT 3;"
	list, err := SplitMySQL(statement, ";")
	require.NoError(t, err)
	require.Equal(t, []string{
		"CREATE PROCEDURE p() BEGIN SELECT 1; SELECT 2; END",
		"SELECT 3",
	}, texts(dropEmpty(list)))
}

func TestSplitMySQLNestedBlocks(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      []string
	}{
		{
			name:      "if function and if block",
			statement: "CREATE PROCEDURE p() BEGIN IF x THEN SELECT 1; END IF; SELECT IF(a, b, c); END; SELECT 2;",
			want:      []string{"CREATE PROCEDURE p() BEGIN IF x THEN SELECT 1; END IF; SELECT IF(a, b, c); END", "SELECT 2"},
		},
		{
			name: "labeled while and case",
			statement: `CREATE PROCEDURE p(n INT) BEGIN
label1: WHILE n > 0 DO
  CASE n WHEN 1 THEN SET n = 0; ELSE SET n = n - 1; END CASE;
END WHILE label1;
END;
CALL p(3);`,
			want: []string{
				"CREATE PROCEDURE p(n INT) BEGIN\nlabel1: WHILE n > 0 DO\n  CASE n WHEN 1 THEN SET n = 0; ELSE SET n = n - 1; END CASE;\nEND WHILE label1;\nEND",
				"CALL p(3)",
			},
		},
		{
			name:      "transaction begin opens no block",
			statement: "BEGIN; UPDATE t SET a = 1; COMMIT;",
			want:      []string{"BEGIN", "UPDATE t SET a = 1", "COMMIT"},
		},
		{
			name:      "repeat function",
			statement: "SELECT REPEAT('ab', 3); SELECT 2;",
			want:      []string{"SELECT REPEAT('ab', 3)", "SELECT 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := SplitMySQL(tt.statement, ";")
			require.NoError(t, err)
			require.Equal(t, tt.want, texts(dropEmpty(list)))
		})
	}
}

func TestSplitMySQLUnbalancedEndFallsBack(t *testing.T) {
	_, err := SplitMySQL("select 1; end; select 2;", ";")
	require.ErrorIs(t, err, errUnbalancedBlock)

	require.Equal(t, []string{"select 1", "end", "select 2"}, texts(Split("select 1; end; select 2;", DialectMySQL, "")))
}

func TestLexErrorListenerKeepsFirstError(t *testing.T) {
	l := newLexErrorListener("select 1;\n  select ~~ from t;")
	l.SyntaxError(nil, nil, 2, 9, "token recognition error", nil)
	l.SyntaxError(nil, nil, 2, 12, "second", nil)

	require.NotNil(t, l.err)
	require.Equal(t, int32(2), l.err.Position.Line)
	require.Equal(t, "token recognition error", l.err.Message)
	require.Equal(t, "select ~~ from t;", l.err.Near)
	require.Contains(t, l.err.Error(), "syntax error at line 2:9")

	require.Empty(t, sourceLine("select 1", 3))
}

func TestSplitMySQLDelimiterMode(t *testing.T) {
	statement := `DELIMITER ;;
CREATE PROCEDURE dorepeat(p1 INT)
BEGIN
	DECLARE x INT;
	SET x = 0;
END;;
DELIMITER ;
CALL dorepeat(1000);
`
	list := Split(statement, DialectMySQL, "")
	require.Len(t, list, 2)
	require.True(t, strings.HasPrefix(list[0].Text, "CREATE PROCEDURE dorepeat"))
	require.True(t, strings.HasSuffix(list[0].Text, "END"))
	require.Contains(t, list[0].Text, "DECLARE x INT;")
	require.Equal(t, "CALL dorepeat(1000)", list[1].Text)
	require.Equal(t, int32(2), list[0].Start.Line)
}

func TestSplitPostgreSQL(t *testing.T) {
	statement := "select 1;\nselect 'a;b';\ncreate function f() returns int as $$ select 1; $$ language sql;"
	list, err := SplitPostgreSQL(statement, ";")
	require.NoError(t, err)
	require.Equal(t, []string{
		"select 1",
		"select 'a;b'",
		"create function f() returns int as $$ select 1; $$ language sql",
	}, texts(dropEmpty(list)))
	require.Equal(t, int32(3), list[2].Start.Line)

	_, err = SplitPostgreSQL("select 1 // select 2", "//")
	require.Error(t, err)
}

func TestSplitFallsBackToGeneric(t *testing.T) {
	list := Split("select 1 // select 2 //", DialectPostgres, "//")
	require.Equal(t, []string{"select 1", "select 2"}, texts(list))
}

func TestSplitGenericCommentOnlyIsEmpty(t *testing.T) {
	list := SplitGeneric("select 1; -- it's done\n/* trailing */", ";")
	require.Len(t, list, 2)
	require.False(t, list[0].Empty)
	require.True(t, list[1].Empty)

	require.Equal(t, []string{"select 1"}, texts(Split("select 1; -- it's done\n/* trailing */", DialectGeneric, "")))
}

func TestSplitDialectsAgreeOnText(t *testing.T) {
	statement := "-- the user's table\nselect * from a;\ninsert into b values (1) ;\nselect x from c where y = 1 or z = 2;"
	want := []string{
		"-- the user's table\nselect * from a",
		"insert into b values (1)",
		"select x from c where y = 1 or z = 2",
	}
	for _, dialect := range AllDialects {
		t.Run(string(dialect), func(t *testing.T) {
			require.Equal(t, want, texts(Split(statement, dialect, "")))
		})
	}
}

func TestSplitDropsEmpty(t *testing.T) {
	for _, dialect := range AllDialects {
		t.Run(string(dialect), func(t *testing.T) {
			require.Empty(t, Split(";\n;\n", dialect, ""))
			require.Empty(t, Split("", dialect, ""))
		})
	}
}

func dropEmpty(list []SingleSQL) []SingleSQL {
	var out []SingleSQL
	for _, sql := range list {
		if !sql.Empty {
			out = append(out, sql)
		}
	}
	return out
}
