package domain

import "errors"

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrVersionNotFound     = errors.New("version not found")
	ErrNoCompatibleVersion = errors.New("no compatible version found")
	ErrAuthRequired        = errors.New("authentication required")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrDownloadFailed      = errors.New("download failed")
)
