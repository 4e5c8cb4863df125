package rules

import (
	"regexp"

	"github.com/nsxbet/sqlcheck/pkg/advisor"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

var applicationRules = []*advisor.Rule{
	{
		ID:       "ReadablePasswords",
		Code:     advisor.ReadablePasswords,
		Title:    "Readable Passwords",
		Category: types.CategoryApplication,
		Severity: types.SeverityError,
		Pattern:  regexp.MustCompile(`(password varchar)|(password text)|(password =)|(pwd varchar)|(pwd text)|(pwd =)`),
		Policy:   advisor.Any(),
		Message: `● Do not store readable passwords:
It's not secure to store a password in clear text or even to pass it over the
network in the clear. If an attacker can read the SQL statement you use to
insert a password, they can see the password plainly.
Additionally, interpreting the user's input string into the query in plain
text is a source of risk. Instead, store a one-way cryptographic hash of the
password, computed with a salt. Compare hashes in the application rather than
in the query, and reset forgotten passwords instead of recovering them.
`,
	},
}
