package journal

import "codeberg.org/mutker/powerlog/internal/errors"

const (
	ErrJournalCreate = errors.ErrorCode("journal_create_failed")
	ErrJournalAppend = errors.ErrorCode("journal_append_failed")
	ErrJournalAccess = errors.ErrorCode("journal_access_failed")
)
