package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyCorpus  = errors.New("no matches with events in corpus")
)
