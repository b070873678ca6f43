package models

import (
	"errors"
	"fmt"
)

var (
	// ErrLateRecord - запись пришла позже допустимого опоздания своего окна
	ErrLateRecord = errors.New("record arrived after allowed lateness")
	// ErrQueueFull - очередь воркера переполнена, запись отброшена
	ErrQueueFull = errors.New("ingest queue is full")
)

// DecodeError - входные байты не удалось превратить в LocationRecord
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", e.Reason, e.Err)
	}
	return "decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// CacheRefreshError - хранилище зон недоступно, используется устаревший снимок
type CacheRefreshError struct {
	Err error
}

func (e *CacheRefreshError) Error() string {
	return fmt.Sprintf("zone cache refresh: %v", e.Err)
}

func (e *CacheRefreshError) Unwrap() error { return e.Err }

// ClassificationError - у записи отсутствуют или некорректны поля координат
type ClassificationError struct {
	SubjectID string
	Reason    string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify subject %q: %s", e.SubjectID, e.Reason)
}

// SinkWriteError - сбой одной ветки fan-out
type SinkWriteError struct {
	Branch string
	Err    error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Branch, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }
