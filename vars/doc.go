// Package vars declares named variables in scopes and resolves references to
// them embedded in strings.
//
// A reference is either braced, ${name}, or unbraced, $name. An unbraced name
// runs until one of the terminators '}', ' ', '/', ':' or the end of input,
// and a '}' ending an unbraced name is always an error. There are no escape
// sequences; a '$' that does not start a reference is an error.
//
//	scope := vars.New()
//	_, _ = scope.Declare("user", "ardnew")
//	s, _ := vars.Resolve("/home/${user}/bin", true, scope) // "/home/ardnew/bin"
//
// Resolution is a single pass: substituted values are never scanned again.
//
// Two [Scope] implementations are provided. [Memory] owns its variables and
// may fall back to an enclosing scope. [Environ] proxies environment
// variables through an [env.Provider] and only accepts string values.
package vars
