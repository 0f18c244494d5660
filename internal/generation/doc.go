// Package generation defines the interface to the AI backend that powers
// the simulated client chat and the code-review loop, plus the error
// taxonomy implementations report against.
package generation
