package model

// Package model defines the domain data structures shared across the app:
// download job specs, job states, and progress samples. Structures are
// designed for direct binding in the UI and explicit state transitions.
