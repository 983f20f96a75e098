// Package gravity holds the Gravity Forms side of the bridge: the form and
// field definitions returned by the form source, the identifier type shared by
// forms and fields, and the submission result passed back to callers.
//
// Records are decoded from the JSON returned by the Gravity Forms REST API or
// from JSON/YAML fixture documents (see DecodeForm). Open string vocabularies
// such as field types and sizes are kept as plain strings; the constants below
// only name the values the translator has rules for.
package gravity
