// Package darwin registers the macOS platform provider. Window bounds are read
// through osascript and System Events, which requires the calling terminal to
// hold the Accessibility permission.
package darwin
