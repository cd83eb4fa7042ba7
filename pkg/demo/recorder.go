package demo

import (
	"bufio"
	"io"
	"os"

	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
	gameio "github.com/psydoom/ticksync/pkg/game/io"
	"github.com/psydoom/ticksync/pkg/input"

	"github.com/rs/zerolog/log"
)

const (
	player1Changed = 0x80
	player2Changed = 0x40
	maxElapsed     = 7
)

// Recorder is an open demo recording. It is created already recording and
// stops for good on End or on the first write failure.
type Recorder struct {
	path   string
	file   io.Closer
	writer *bufio.Writer

	// The last compact input of each player, written or not.
	previous [game.MaxPlayers]input.CompactTickInput

	ticks int
}

// Begin creates the demo file at path and writes its header.
func Begin(path string, header Header) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, newError(KindIO, path, err)
	}

	recorder, err := newRecorder(file, path, header)
	if err != nil {
		file.Close()
		return nil, err
	}

	recorder.file = file
	return recorder, nil
}

// NewRecorder records to an arbitrary writer. End flushes but does not close
// it.
func NewRecorder(w io.Writer, header Header) (*Recorder, error) {
	return newRecorder(w, "", header)
}

func newRecorder(w io.Writer, path string, header Header) (*Recorder, error) {
	header.FormatVersion = FormatVersion
	err := header.Validate(0)
	if err != nil {
		if demoErr, ok := err.(*Error); ok {
			demoErr.Path = path
		}
		return nil, err
	}

	data, err := header.encode()
	if err != nil {
		return nil, newError(KindFormat, path, err)
	}

	r := &Recorder{
		path:   path,
		writer: bufio.NewWriter(w),
	}

	_, err = r.writer.Write(data)
	if err != nil {
		return nil, newError(KindIO, path, err)
	}

	for i := range r.previous {
		r.previous[i].Reset()
	}

	log.Debug().
		Str("path", path).
		Int32("map", header.Map).
		Str("skill", header.Skill.String()).
		Str("type", header.GameType.String()).
		Msg("demo recording started")

	return r, nil
}

func (r *Recorder) IsRecording() bool {
	return r.writer != nil
}

func (r *Recorder) Path() string {
	return r.path
}

// Ticks is the number of tick records written so far.
func (r *Recorder) Ticks() int {
	return r.ticks
}

func clampElapsed(elapsed int32) uint8 {
	if elapsed < 0 {
		return 0
	}
	if elapsed > maxElapsed {
		return maxElapsed
	}
	return uint8(elapsed)
}

// RecordTick writes one tick record. The input of a player is only written
// when it differs from that player's input on the previous tick.
func (r *Recorder) RecordTick(inputs *[game.MaxPlayers]input.TickInput, elapsed [game.MaxPlayers]int32) error {
	if !r.IsRecording() {
		return ErrNotRecording
	}

	var current [game.MaxPlayers]input.CompactTickInput
	for i := range current {
		current[i].SerializeFrom(&inputs[i])
	}

	var status uint8
	if !current[0].Equals(&r.previous[0]) {
		status |= player1Changed
	}
	if !current[1].Equals(&r.previous[1]) {
		status |= player2Changed
	}
	status |= clampElapsed(elapsed[0]) << 3
	status |= clampElapsed(elapsed[1])

	record := gameio.Buffer{status}
	for i, mask := range []uint8{player1Changed, player2Changed} {
		if status&mask == 0 {
			continue
		}

		compact := current[i]
		endian.Correct(&compact)
		err := record.Put(&compact)
		if err != nil {
			return r.fail(err)
		}
	}

	r.previous = current

	_, err := r.writer.Write(record)
	if err != nil {
		return r.fail(err)
	}

	r.ticks++
	return nil
}

// End flushes and closes the demo.
func (r *Recorder) End() error {
	if !r.IsRecording() {
		return ErrNotRecording
	}

	err := r.writer.Flush()
	if err != nil {
		return r.fail(err)
	}

	err = r.close()
	if err != nil {
		return newError(KindIO, r.path, err)
	}

	log.Debug().Str("path", r.path).Int("ticks", r.ticks).Msg("demo recording finished")
	return nil
}

func (r *Recorder) close() error {
	r.writer = nil
	if r.file == nil {
		return nil
	}

	file := r.file
	r.file = nil
	return file.Close()
}

// fail ends the recording after a write error. Whatever made it to the
// buffer is flushed if possible. The demo is not usable afterwards.
func (r *Recorder) fail(cause error) error {
	flushErr := r.writer.Flush()
	if flushErr != nil && flushErr != cause {
		log.Warn().Err(flushErr).Str("path", r.path).Msg("could not flush demo")
	}

	closeErr := r.close()
	if closeErr != nil {
		log.Warn().Err(closeErr).Str("path", r.path).Msg("could not close demo")
	}

	return newError(KindIO, r.path, cause)
}
