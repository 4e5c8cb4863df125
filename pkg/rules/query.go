package rules

import (
	"regexp"

	"github.com/nsxbet/sqlcheck/pkg/advisor"
	"github.com/nsxbet/sqlcheck/pkg/config"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

var queryRules = []*advisor.Rule{
	{
		ID:       "SelectStar",
		Code:     advisor.SelectStar,
		Title:    "SELECT *",
		Category: types.CategoryQuery,
		Severity: types.SeverityError,
		Pattern:  regexp.MustCompile(`select\s+\*`),
		Policy:   advisor.Any(),
		Message: `● Inefficiency in moving data to the consumer:
When you SELECT *, you're often retrieving more columns from the database than
your application really needs to function. This causes more data to move from
the database server to the client, slowing access and increasing load on your
machines, as well as taking more time to travel across the network. This is
especially true when someone adds new columns to underlying tables that didn't
exist and weren't needed when the original consumers coded their data access.

● Indexing issues:
Consider a scenario where you want to tune a query to a high level of performance.
If you were to use *, and it returned more columns than you actually needed,
the server would often have to perform more expensive methods to retrieve your
data than it otherwise might. For example, you wouldn't be able to create an index
which simply covered the columns in your SELECT list, and even if you did
(including all columns), the next person who came around and added a column
to the underlying table would cause the optimizer to ignore your optimized covering
index, and you'd likely find that the performance of your query would drop
substantially for no readily apparent reason.

● Binding Problems:
When you SELECT *, it's possible to retrieve two columns of the same name from two
different tables. This can often crash your data consumer. Imagine a query that joins
two tables, both of which contain a column called "ID". How would a consumer know
which was which? SELECT * can also confuse views when underlying table structures
change: the view is not rebuilt, and the data which comes back can be nonsense.
You can take care to name your columns whatever you want, but the next person who
comes along might have no way of knowing that they have to worry about adding a
column which will collide with your already-developed names.
`,
	},
	{
		ID:       "NullUsage",
		Code:     advisor.NullUsage,
		Title:    "NULL Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`null`),
		Policy:   advisor.Any(),
		Message: `● Use NULL as a Unique Value:
NULL is not the same as zero. A number ten greater than an unknown is still an unknown.
NULL is not the same as a string of zero length.
Combining any string with NULL in standard SQL returns NULL.
NULL is not the same as false. Boolean expressions with AND, OR, and NOT also produce
results that some people find confusing.
When you declare a column as NOT NULL, it should be because it would make no sense
for the row to exist without a value in that column.
Use null to signify a missing value for any data type.
`,
	},
	{
		ID:       "NotNullUsage",
		Code:     advisor.NotNullUsage,
		Title:    "NOT NULL Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityWarning,
		Guard:    isCreateTable,
		Pattern:  regexp.MustCompile(`not null`),
		Policy:   advisor.Any(),
		Message: `● Use NOT NULL only if the column cannot have a missing value:
When you declare a column as NOT NULL, it should be because it would make no sense
for the row to exist without a value in that column.
Use null to signify a missing value for any data type.
`,
	},
	{
		ID:       "StringConcatenation",
		Code:     advisor.StringConcatenation,
		Title:    "String Concatenation",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`\|\|`),
		Policy:   advisor.Any(),
		Message: `● Use COALESCE for string concatenation of nullable columns:
You may need to force a column or expression to be non-null for the sake of
simplifying the query logic, but you don't want that value to be stored.
Use COALESCE function to construct the concatenated expression so that a
null-valued column doesn't make the whole expression become null.
EX: SELECT first_name || COALESCE(' ' || middle_initial || ' ', ' ') || last_name
AS full_name FROM Accounts;
`,
	},
	{
		ID:       "GroupByUsage",
		Code:     advisor.GroupByUsage,
		Title:    "GROUP BY Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`group by`),
		Policy:   advisor.Any(),
		Message: `● Do not reference non-grouped columns:
Every column in the select-list of a query must have a single value row
per row group. This is called the Single-Value Rule.
Columns named in the GROUP BY clause are guaranteed to be exactly one value
per group, no matter how many rows the group matches.
Most DBMSs report an error if you try to run any query that tries to return
a column other than those columns named in the GROUP BY clause or as
arguments to aggregate functions.
Every expression in the select list must be contained in either an
aggregate function or the GROUP BY clause.
Follow the single-value rule to avoid ambiguous query results.
`,
	},
	{
		ID:       "OrderByRand",
		Code:     advisor.OrderByRand,
		Title:    "ORDER BY RAND Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityWarning,
		Pattern:  regexp.MustCompile(`order by rand\(`),
		Policy:   advisor.Any(),
		Message: `● Sorting by a nondeterministic expression (RAND()) means the sorting cannot benefit from an index:
There is no index containing the values returned by the random function.
That's the point of them being random: they are different and unpredictable each time
they're selected. This is a problem for the performance of the query, because using an
index is one of the best ways of speeding up sorting. The consequence of not using an
index is that the query result set has to be sorted by the database using a slow table scan.
One technique that avoids sorting the table is to choose a random value between 1 and
the greatest primary key value.
Still another technique that avoids problems found in the preceding alternatives is to
count the rows in the data set and return a random number between 0 and the count.
Then use this number as an offset.
Some queries just cannot be optimized; consider using different approaches.
`,
	},
	{
		ID:       "PatternMatching",
		Code:     advisor.PatternMatching,
		Title:    "Pattern Matching Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`(like)|(regexp)|(similar to)`),
		Policy:   advisor.Any(),
		Message: `● Avoid using vanilla pattern matching:
The most important disadvantage of pattern-matching operators is that
they have poor performance. A second problem of simple pattern-matching using LIKE
or regular expressions is that it can find unintended matches.
It's best to use a specialized search engine technology like Apache Lucene,
instead of SQL. Another alternative is to reduce the recurring cost of search by
saving the result. Consider using vendor extensions like FULLTEXT INDEX in MySQL.
More broadly, you don't have to use SQL to solve every problem.
`,
	},
	{
		ID:       "SpaghettiQueryAlert",
		Code:     advisor.SpaghettiQueryAlert,
		Title:    "Spaghetti Query Alert",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Policy:   advisor.Length(config.SpaghettiLengthThreshold),
		Message: `● Split up a complex spaghetti query into several simpler queries:
SQL is a very expressive language; you can accomplish a lot in a single query
or statement. But that doesn't mean it's mandatory or even a good idea to approach
every task with the assumption it has to be done in one line of code.
One common unintended consequence of producing all your results in one query is
a Cartesian product. This happens when two of the tables in the query have no
condition restricting their relationship. Without such a restriction, the join
of two tables pairs each row in the first table to every row in the other table.
Each such pairing becomes a row of the result set, and you end up with many
more rows than you expect.
It's important to consider that these queries are simply hard to write,
hard to modify, and hard to debug. You should expect to get regular requests
for incremental enhancements to your database applications. Managers want
more complex reports and more fields in a user interface. If you design intricate,
monolithic SQL queries, it's more costly and time-consuming to make enhancements
to them. Your time is worth something, both to you and to your project.
Split up a complex spaghetti query into several simpler queries.
When you split up a complex SQL query, the result may be many similar queries,
perhaps varying slightly depending on data values. Writing these queries is a chore,
so it's a good application of SQL code generation.
Although SQL makes it seem possible to solve a complex problem in a single line
of code, don't be tempted to build a house of cards.
`,
	},
	{
		ID:       "ReduceJoins",
		Code:     advisor.ReduceJoins,
		Title:    "Reduce Number of JOINs",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`join`),
		Policy:   advisor.Count(config.JoinCountThreshold),
		Message: `● Reduce Number of JOINs:
Too many JOINs is a symptom of complex spaghetti queries. Consider splitting
up the complex query into many simpler queries, and reduce the number of JOINs.
`,
	},
	{
		ID:       "EliminateDistinct",
		Code:     advisor.EliminateDistinct,
		Title:    "Eliminate Unnecessary DISTINCT Conditions",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`distinct`),
		Policy:   advisor.Count(config.DistinctCountThreshold),
		Message: `● Eliminate Unnecessary DISTINCT Conditions:
Too many DISTINCT conditions is a symptom of complex spaghetti queries.
Consider splitting up the complex query into many simpler queries, and reduce the
number of DISTINCT conditions.
It is possible that the DISTINCT condition has no effect if a primary key column
is part of the result set of columns.
`,
	},
	{
		ID:       "ImplicitColumns",
		Code:     advisor.ImplicitColumns,
		Title:    "Implicit Column Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`insert\s+into\s+\S+\s+values`),
		Policy:   advisor.Any(),
		Message: `● Explicitly name columns:
Although using wildcards and unnamed columns satisfies the goal of less typing,
this habit creates several hazards. This can break application refactoring and
can harm performance. Always spell out all the columns you need, instead of
relying on wild-cards or implicit column lists.
`,
	},
	{
		ID:       "HavingClause",
		Code:     advisor.HavingClause,
		Title:    "HAVING Clause Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`having`),
		Policy:   advisor.Any(),
		Message: `● Consider removing the HAVING clause:
Rewriting the query's HAVING clause into a predicate will enable the
use of indexes during query processing.
EX: SELECT s.cust_id,count(s.cust_id) FROM SH.sales s GROUP BY s.cust_id
HAVING s.cust_id != '1660' AND s.cust_id != '2' can be rewritten as:
SELECT s.cust_id,count(cust_id) FROM SH.sales s WHERE s.cust_id != '1660'
AND s.cust_id != '2' GROUP BY s.cust_id;
`,
	},
	{
		ID:       "NestedSubqueries",
		Code:     advisor.NestedSubqueries,
		Title:    "Nested Sub Queries",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`select`),
		Policy:   advisor.Count(config.NestingThreshold),
		Message: `● Un-nest sub queries:
Rewriting nested queries as joins often leads to more efficient
execution and more effective optimization. In general, sub-query unnesting
is always done for correlated sub-queries with, at most, one table in
the FROM clause, which are used in ANY, ALL, and EXISTS predicates.
A uncorrelated sub-query, or a sub-query with more than one table in
the FROM clause, is flattened if it can be decided, based on the query
semantics, that the sub-query returns at most one row.
EX: SELECT * FROM SH.products p WHERE p.prod_id = (SELECT s.prod_id FROM SH.sales
s WHERE s.cust_id = 100996 AND s.quantity_sold = 1 ) can be rewritten as:
SELECT p.* FROM SH.products p, sales s WHERE p.prod_id = s.prod_id AND
s.cust_id = 100996 AND s.quantity_sold = 1;
`,
	},
	{
		ID:       "OrUsage",
		Code:     advisor.OrUsage,
		Title:    "OR Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`\sor\s`),
		Policy:   advisor.Any(),
		Message: `● Consider using an IN predicate when querying an indexed column:
The IN-list predicate can be exploited for indexed retrieval and also,
the optimizer can sort the IN-list to match the sort sequence of the index,
leading to more efficient retrieval. Note that the IN-list must contain only
constants, or values that are constant during one execution of the query block,
such as outer references.
EX: SELECT s.* FROM SH.sales s WHERE s.prod_id = 14 OR s.prod_id = 17
can be rewritten as:
SELECT s.* FROM SH.sales s WHERE s.prod_id IN (14, 17);
`,
	},
	{
		ID:       "UnionUsage",
		Code:     advisor.UnionUsage,
		Title:    "UNION Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`union`),
		Policy:   advisor.Any(),
		Message: `● Consider using UNION ALL if you do not care about duplicates:
Unlike UNION which removes duplicates, UNION ALL allows duplicate tuples.
If you do not care about duplicates, then using UNION ALL would be a more
efficient choice.
`,
	},
	{
		ID:       "DistinctJoin",
		Code:     advisor.DistinctJoin,
		Title:    "DISTINCT & JOIN Usage",
		Category: types.CategoryQuery,
		Severity: types.SeverityInfo,
		Pattern:  regexp.MustCompile(`distinct.*join`),
		Policy:   advisor.Any(),
		Message: `● Consider using a sub-query with EXISTS instead of DISTINCT:
The DISTINCT keyword removes duplicates after sorting the tuples.
Instead, consider using a sub query with the EXISTS keyword, you can avoid
having to return an entire table.
EX: SELECT DISTINCT c.country_id, c.country_name FROM SH.countries c,
SH.customers e WHERE e.country_id = c.country_id can be rewritten to:
SELECT c.country_id, c.country_name FROM SH.countries c WHERE EXISTS
(SELECT 'X' FROM SH.customers e WHERE e.country_id = c.country_id);
`,
	},
}
