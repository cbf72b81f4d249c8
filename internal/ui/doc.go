package ui

// Package ui contains the Fyne-based desktop user interface. It wires user
// interactions to the download scheduler and renders job rows, stats, and
// settings from the scheduler's event stream.
