package ui

import "github.com/babarot/sweep/internal/library"

// candidateMsg carries the result of asking the selector for the next asset
type candidateMsg struct {
	asset   library.Asset
	found   bool
	exclude []string
	err     error
}

// trashedMsg reports that an asset was added to the trash
type trashedMsg struct {
	asset library.Asset
	count int
}

// restoredMsg reports that the last trashed asset was taken back out
type restoredMsg struct {
	asset library.Asset
	count int
}

type countMsg struct {
	count int
}
