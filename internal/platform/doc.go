// Package platform isolates the host-specific behavior of the xmodits CLI.
//
// Two behaviors differ between operating systems:
//
//   - Path-prefix expansion: cmd.exe and PowerShell pass "~" and wildcard
//     patterns through to the program untouched, while POSIX shells expand
//     both before the program starts.
//   - End-of-run pause: a console window opened by double-clicking the
//     binary on Windows closes as soon as the process exits, hiding the
//     output, so the run ends by waiting for Enter.
//
// Both are modeled by the Platform interface with one implementation per
// family. Both implementations compile on every host so that the resolver
// and dispatcher can be tested against either; Native picks the one that
// matches the build target.
package platform
