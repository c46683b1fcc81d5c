package contact

import "errors"

var (
	ErrUnreadableFile = errors.New("unreadable spreadsheet file")
	ErrEmptySave      = errors.New("no records to save")
	ErrBeginSave      = errors.New("failed to start contact batch")
	ErrCommitFailed   = errors.New("failed to commit contact batch")
	ErrNoContacts     = errors.New("no contacts to export")
	ErrExportContacts = errors.New("failed to export contacts")
	ErrContactStats   = errors.New("failed to count contacts")
	ErrLegacyImport   = errors.New("failed to replace legacy rows")
)
