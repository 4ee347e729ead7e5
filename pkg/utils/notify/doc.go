// Package notify writes styled, user-facing messages to CLI output.
//
// Each [MessageType] has a symbol and color: error (✗), warning (⚠),
// activity (►), added (✚), success (✔), info (ℹ) and titles with an emoji.
// Colors are disabled automatically when output is not a terminal.
package notify
