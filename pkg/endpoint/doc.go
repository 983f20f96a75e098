// Package endpoint serves the two bridge operations: translating a stored
// Gravity Forms form into a form.io schema, and handing a form.io submission
// back to Gravity Forms. Each call checks, in order, that the form platform is
// available, that an id was given and that the form exists, and reports the
// first failure as an *Error carrying a stable message record.
package endpoint
