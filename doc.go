// Package formstate holds the state of a single form: ordered string fields,
// per-field validation rules and the error entry each rule produces.
//
// Rules are regular expressions, named patterns from a Registry, or boolean
// expressions run by an Evaluator (expr by default, CEL, or JavaScript with
// the js_eval build tag). Forms can be persisted to any store.Store as a JSON
// object of their fields, emit lifecycle events through pkg/activity, and be
// described as OpenAPI schemas through schema/openapi.
package formstate
