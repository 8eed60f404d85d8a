package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/guiguan/caster"
	"github.com/npillmayer/mlvec"
)

/*
BSD 3-Clause License

Copyright (c) 2020–26, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// Some constants for read buffer defaults
const (
	sixtyFourKb = 65536
	oneMb       = 1048576
	prefetch    = 256 // lines read ahead of the loading goroutine
)

// Progress is broadcast to subscribers of a Loader while a file is loaded.
type Progress struct {
	Lines  int   // number of lines loaded so far
	Blocks int   // number of completely filled blocks
	Done   bool  // true for the final event of a load
	Err    error // error which ended the load, if any; only set if Done
}

// Loader loads text files into vectors of lines, broadcasting progress
// events to subscribers. A Loader serves a single call to Load.
type Loader struct {
	cfg  mlvec.Config[string]
	cast *caster.Caster // broadcaster for progress events
}

// NewLoader creates a loader for vectors with configuration cfg.
func NewLoader(cfg mlvec.Config[string]) *Loader {
	return &Loader{
		cfg:  cfg,
		cast: caster.New(nil),
	}
}

// Subscribe returns a channel of progress events. Subscribers have to
// subscribe before calling Load and must keep reading from the channel,
// as loading waits for slow subscribers. The channel is closed after the
// final event or when ctx is done.
func (l *Loader) Subscribe(ctx context.Context, capacity uint) (<-chan Progress, bool) {
	ch, ok := l.cast.Sub(ctx, capacity)
	if !ok {
		return nil, false
	}
	events := make(chan Progress, capacity)
	go func() {
		defer close(events)
		for msg := range ch {
			p, ok := msg.(Progress)
			if !ok {
				continue
			}
			select {
			case events <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, true
}

// Load reads a file, which must be a text file, and returns its lines as a
// vector. Line terminators are not part of the lines.
func Load(name string, cfg mlvec.Config[string]) (*mlvec.Vector[string], error) {
	return NewLoader(cfg).Load(name)
}

// Load reads a file, which must be a text file, and returns its lines as a
// vector. Opening the file is done synchronously; lines are read ahead by a
// background goroutine while the vector is filled.
func (l *Loader) Load(name string) (*mlvec.Vector[string], error) {
	defer l.cast.Close()
	file, err := openFile(name)
	if err != nil {
		l.cast.Pub(Progress{Done: true, Err: err})
		return nil, err
	}
	defer file.Close()
	v, err := mlvec.New(l.cfg)
	if err != nil {
		l.cast.Pub(Progress{Done: true, Err: err})
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := startReading(ctx, file)
	B := v.BlockSize()
	for line := range r.lines {
		if err = v.PushBack(line); err != nil {
			err = fmt.Errorf("loading line %d of %s: %w", v.Len()+1, name, err)
			break
		}
		if v.Len()%B == 0 {
			l.cast.Pub(Progress{Lines: v.Len(), Blocks: v.Len() / B})
		}
	}
	cancel()
	for range r.lines { // let the reader terminate
	}
	if err == nil {
		err = r.lastError
	}
	l.cast.Pub(Progress{Lines: v.Len(), Blocks: v.Len() / B, Done: true, Err: err})
	if err != nil {
		tracer().Errorf("textfile: %v", err)
		return nil, errors.Join(err, v.Clear())
	}
	tracer().Debugf("textfile: loaded %d lines from %s", v.Len(), name)
	return v, nil
}

// openFile opens an OS file, checking for error conditions.
func openFile(name string) (*os.File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file is not a regular file: %s", name)
	}
	return os.Open(name) // just open for read access
}

// --- File reading goroutine ------------------------------------------------

type lineReader struct {
	lines     chan string
	lastError error // valid after lines is closed
}

func startReading(ctx context.Context, file *os.File) *lineReader {
	r := &lineReader{lines: make(chan string, prefetch)}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, sixtyFourKb), oneMb)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.lastError = fmt.Errorf("reading text file: %w", err)
		}
	}()
	return r
}
