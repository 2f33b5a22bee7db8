// Package preflight provides readiness checks for the directories edsmover
// works on.
//
// These checks run in two contexts:
//   - The run command logs a warning for every failed check before the loop
//     starts. Failures never stop the loop; the directory may appear later.
//   - The CLI "config check" command renders every result as a status line.
package preflight
