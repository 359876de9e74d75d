// Package pgtext converts scalar values to and from their PostgreSQL text
// representation.
/*
Each supported type has a ParseX function that accepts the PostgreSQL text
form and a FormatX function that appends the canonical text form to a
FormatBuffer. Parse and format functions are pure: they hold no state and may
be called concurrently.

Every formatter reports whether its output can be embedded in a list literal
as is (NestableYes) or must be inspected and possibly quoted first
(NestableMayNeedEscaping). FormatList relies on that report to decide which
elements to escape, so a formatter must never claim NestableYes for output
that could contain one of the list special characters.

Lists

ParseList and FormatList implement the `{elem,elem,...}` literal grammar used
for arrays. They are generic over the element type and take the element
parser or formatter as a function, so nested lists are handled by passing a
closure that itself calls ParseList or FormatList.

	ints, err := pgtext.ParseList("{1,NULL,3}",
		func() *int32 { return nil },
		func(s string) (*int32, error) {
			n, err := pgtext.ParseInt32(s)
			return &n, err
		},
	)
*/
package pgtext
