// Package translate is the mapping engine between Gravity Forms and form.io.
//
// Forward turns a gravity.Form into a formio.Schema by running every field
// through an ordered pipeline of pure steps (see DefaultSteps). The step order
// is part of the contract: later steps look at what earlier steps resolved,
// for example the choice step routes options based on the component type the
// type and selectboxes steps settled on.
//
// TranslateSubmission goes the other way, rebuilding a Gravity Forms
// submission body keyed by "input_<field id>" from a form.io payload keyed by
// component key.
//
// Both directions are total and stateless; callers may share a Forward across
// goroutines.
package translate
