package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/StinkyLord/build-info-recorder/internal/events"
	"github.com/StinkyLord/build-info-recorder/internal/recorder"
)

// decodeFunc turns an input file into build events.
type decodeFunc func(io.Reader) ([]events.Event, error)

func replayFile(rec *recorder.Recorder, path string, decode decodeFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	evs, err := decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := rec.Replay(events.NewSliceSource(evs...)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
