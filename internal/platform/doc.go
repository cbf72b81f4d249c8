package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, playlist probing, and OS open/reveal.
