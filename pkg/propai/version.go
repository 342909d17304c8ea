// Package propai holds module-wide constants.
package propai

// Version is the release of the propai module and CLI.
const Version = "0.1.0"
