// Package controller holds the editor buffers, the data point cache and
// the current selection, and implements the user actions against the
// labeling service. Front ends supply a Prompter for dialogs and an
// Indicator for the busy state.
package controller
