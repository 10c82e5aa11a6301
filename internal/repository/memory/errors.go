package memory

import "errors"

var (
	ErrDuplicateKey = errors.New("memory: duplicate primary key")
	ErrForeignKey   = errors.New("memory: parent_id references a missing row")
	ErrRowMissing   = errors.New("memory: row does not exist")
)
