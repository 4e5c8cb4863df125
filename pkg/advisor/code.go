package advisor

// Code is the numeric identifier of a rule.
type Code int

// Rule codes.
const (
	Ok Code = 0

	// 101 ~ 199 logical database design.
	MultiValuedAttribute Code = 101
	RecursiveDependency  Code = 102
	PrimaryKeyExists     Code = 103
	GenericPrimaryKey    Code = 104
	ForeignKeyExists     Code = 105
	VariableAttribute    Code = 106
	MetadataTribbles     Code = 107

	// 201 ~ 299 physical database design.
	ImpreciseDataType   Code = 201
	ValuesInDefinition  Code = 202
	ExternalFiles       Code = 203
	IndexCount          Code = 204
	IndexAttributeOrder Code = 205

	// 301 ~ 399 query.
	SelectStar          Code = 301
	NullUsage           Code = 302
	NotNullUsage        Code = 303
	StringConcatenation Code = 304
	GroupByUsage        Code = 305
	OrderByRand         Code = 306
	PatternMatching     Code = 307
	SpaghettiQueryAlert Code = 308
	ReduceJoins         Code = 309
	EliminateDistinct   Code = 310
	ImplicitColumns     Code = 311
	HavingClause        Code = 312
	NestedSubqueries    Code = 313
	OrUsage             Code = 314
	UnionUsage          Code = 315
	DistinctJoin        Code = 316

	// 401 ~ 499 application.
	ReadablePasswords Code = 401
)

// Int returns the int type of code.
func (c Code) Int() int {
	return int(c)
}

// Int32 returns the int32 type of code.
func (c Code) Int32() int32 {
	return int32(c)
}
