// Package ui is the interactive preset picker started by `backdrop pick`.
//
// It is a Bubble Tea program: a list of the merged catalog on the left and
// an approximate preview of the highlighted preset, with its compiled CSS
// properties, on the right. Enter selects, d deletes a custom preset.
//
// The picker subscribes to the preference store and feeds every store Event
// into the program with Program.Send, so a selection made in another
// process (or through `backdrop serve`) shows up immediately. Events carry a
// sequence number and stale ones are dropped.
//
// Chrome colours come from the themes in theme.go and can be cycled with T;
// they never affect the preview, which uses the preset's own colours blended
// with go-colorful.
package ui
