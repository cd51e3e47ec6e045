package cli

import (
	"fmt"
	"os"
)

type noSnapshotError struct {
	path string
}

func (e noSnapshotError) Error() string {
	return fmt.Sprintf("no tree at %s (start one with `rotodendron -f <file>`)", e.path)
}

func (e noSnapshotError) Unwrap() error { return os.ErrNotExist }

func errNoSnapshot(path string) error {
	return noSnapshotError{path: path}
}

type unknownTopicError struct {
	topic string
}

func (e unknownTopicError) Error() string {
	return fmt.Sprintf("unknown docs topic: %q (run `rotodendron docs` to list topics)", e.topic)
}

func errUnknownTopic(topic string) error {
	return unknownTopicError{topic: topic}
}
