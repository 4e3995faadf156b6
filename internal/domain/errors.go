package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyInstruction    = errors.New("transform instruction is empty")
	ErrEmptyQuestion       = errors.New("chat question is empty")
	ErrNoEditsProduced     = errors.New("no slide edits could be recovered from model output")
	ErrNoTransformResult   = errors.New("deck has no transform result yet")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
