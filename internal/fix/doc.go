// Package fix turns surviving lint diagnostics into text edits and applies
// them to a file. A file is patched only when every edit composes safely;
// otherwise it is left untouched.
package fix
