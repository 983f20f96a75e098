// Package formsource defines the form source capability the bridge consumes:
// fetching a Gravity Forms definition by id and submitting an entry. The
// translator never talks to a source directly; the endpoint service does.
//
// Implementations:
//
//   - Memory: in-process forms and entries, also produced by LoadFS from a
//     directory of JSON/YAML form documents.
//   - sqlstore: sqlite-backed forms and entries.
//   - gfapi: the Gravity Forms REST API v2 of a WordPress site.
package formsource
