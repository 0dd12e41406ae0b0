// Package doctest holds tests that keep the code examples in package
// documentation in sync with the exported API.
package doctest
