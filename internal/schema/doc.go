// Package schema locates and canonicalizes tabular data inside
// arbitrarily-authored workbooks.
//
// Three layers build on each other. ResolveColumn maps candidate header
// aliases onto actual headers, case- and whitespace-insensitively.
// SelectSheet picks the sheet satisfying one of several required-column
// alternatives, breaking ties by row count. The normalizers rewrite a chosen
// sheet into canonical typed records, coercing dates and numerics
// permissively: unparseable cells degrade to defaults instead of failing
// the run, while a required column that cannot be resolved at all is a
// terminal configuration error naming the missing fields.
package schema
