// Package formio defines the form.io schema produced by the translator: the
// top-level form document and the component records it holds. Only the keys
// the bridge emits are modelled; optional keys use omitempty so absent
// values stay absent in the encoded JSON.
package formio
