package model

// Tag classifies a company as governmental or private.
type Tag string

const (
	TagGovernment Tag = "GOVERNMENT"
	TagPrivate    Tag = "PRIVATE"
)
