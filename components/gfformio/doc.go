// Package gfformio exposes the form bridge over net/http.
//
// GET <route>/{id} answers with the form.io schema of Gravity Forms form {id};
// POST <route>/{id} maps a form.io submission onto the form and answers with
// the Gravity Forms submission result. Failures are reported as
// {"message": ..., "data"?: ...} records with a matching status code.
package gfformio
