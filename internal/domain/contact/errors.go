package contact

import "errors"

var (
	ErrMissingContactID = errors.New("missing contact id")
	ErrNoContacts       = errors.New("no contacts stored")
)
