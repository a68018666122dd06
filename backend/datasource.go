package backend

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/fsnotify/fsnotify"
)

// Session is one chart-worth of data and where it came from.
type Session struct {
	ID   string
	Data Dataset
	Mode Mode
	Err  error
}

// Datasource owns every data session and the machinery feeding them:
// CSV replay (including files still being written), live MQTT
// subscriptions, and the recording of live sessions back to disk.
type Datasource struct {
	pool          *stream.MutationPool[string, Session]
	watcher       *fsnotify.Watcher
	appCtx        context.Context
	seriesCounter atomic.Int32
}

func NewDatasource(appCtx context.Context, mutator *stream.Mutator) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	ds := &Datasource{
		pool:    stream.NewMutationPool[string, Session](mutator),
		watcher: watcher,
		appCtx:  appCtx,
	}
	return ds, nil
}

func (d *Datasource) SessionStream(ctx context.Context) <-chan map[string]*stream.Mutation[Session] {
	return d.pool.Stream(ctx)
}

// LatestSessionStream emits values from whichever session most
// recently appeared, switching over as new sessions are created.
// Session IDs are generated from timestamps, so lexicographic order is
// creation order.
func (d *Datasource) LatestSessionStream(ctx context.Context) <-chan Session {
	return stream.Multiplex(d.pool.Stream(ctx), func(ctx context.Context, state string, mutations map[string]*stream.Mutation[Session]) (<-chan Session, string) {
		latest := state
		for id := range mutations {
			if id > latest {
				latest = id
			}
		}
		if latest == state {
			return nil, state
		}
		return mutations[latest].Stream(ctx), latest
	})
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

func sessionFileFor(sessionID string) string {
	return "metric-scope-" + sessionID + ".csv"
}

// recordSession owns the lifecycle of a single session: it drains the
// raw sample channel into the dataset, re-emitting the session after
// every change, and mirrors live sessions to a CSV on disk so they can
// be replayed later.
func (d *Datasource) recordSession(sessionID string, mode Mode, samples <-chan InputData) *stream.Mutation[Session] {
	mutation, _ := stream.Mutate(d.pool, sessionID, func(ctx context.Context) (values <-chan Session) {
		out := make(chan Session, 1)
		go func() {
			defer close(out)
			session := Session{
				ID:   sessionID,
				Mode: mode,
			}
			// Emit the empty session immediately so the UI can show it.
			out <- session

			var sessionFile *os.File
			var sessionWriter *bufio.Writer
			var csvWriter *csv.Writer
			var err error
			if mode == ModeLive {
				sessionFile, err = os.Create(sessionFileFor(sessionID))
				if err != nil {
					session.Err = err
					out <- session
					return
				}
				sessionWriter = bufio.NewWriter(sessionFile)
				csvWriter = csv.NewWriter(sessionWriter)
			}
			flushAll := func() {
				if mode == ModeLive {
					csvWriter.Flush()
					err := sessionWriter.Flush()
					err = errors.Join(err, sessionFile.Close())
					if err != nil {
						session.Err = err
						out <- session
					}
				}
			}
			headings := []string{"timestamp_s"}
			seriesToColumn := map[int]int{}
			for {
				select {
				case <-ctx.Done():
					flushAll()
					return
				case input, ok := <-samples:
					if !ok {
						flushAll()
						return
					}
					if input.Kind == KindHeadings {
						for i, seriesID := range input.HeadingSeries {
							seriesToColumn[seriesID] = len(headings)
							headings = append(headings, input.Headings[i])
						}
						session.Data.SetHeadings(input.Headings, input.HeadingSeries)
						if mode == ModeLive {
							if err := csvWriter.Write(headings); err != nil {
								session.Err = err
								out <- session
								return
							}
						}
					} else {
						session.Data.Insert(input.Sample)
						if mode == ModeLive {
							record := make([]string, len(headings))
							record[0] = strconv.FormatFloat(input.TimestampSec, 'f', -1, 64)
							record[seriesToColumn[input.Series]] = input.Raw
							if err := csvWriter.Write(record); err != nil {
								session.Err = err
								out <- session
								return
							}
						}
					}
					out <- session
				}
			}
		}()
		return out
	})
	return mutation
}

// LoadFromFile opens a file chooser and replays the chosen CSV.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile()
	if err != nil {
		return "", err
	}
	return d.LoadFromStream(ModeReplaying, file), nil
}

// LoadFromStream starts a new session fed by the given readers.
func (d *Datasource) LoadFromStream(mode Mode, files ...io.ReadCloser) string {
	id := generateSessionID()
	return d.LoadFromStreamWithID(id, mode, files...)
}

func (d *Datasource) LoadFromStreamWithID(sessionID string, mode Mode, files ...io.ReadCloser) string {
	samples := make(chan InputData, 1024)
	for _, file := range files {
		if f, ok := file.(interface{ Name() string }); ok {
			d.watcher.Add(f.Name())
		}
		go d.readSource(file, samples)
	}
	d.recordSession(sessionID, mode, samples)
	return sessionID
}

// Subscribe starts a live session fed by an MQTT broker.
func (d *Datasource) Subscribe(broker, topic string) (string, error) {
	samples := make(chan InputData, 1024)
	sub, err := newSubscriber(broker, topic, d.nextSeriesID, samples)
	if err != nil {
		return "", err
	}
	id := generateSessionID()
	d.recordSession(id, ModeLive, samples)
	go func() {
		<-d.appCtx.Done()
		sub.Close()
	}()
	return id, nil
}

func (d *Datasource) nextSeriesID() int {
	return int(d.seriesCounter.Add(1))
}

// readSource parses one CSV stream into sample messages. The first
// record is the heading row: a timestamp column followed by one column
// per series. Cell text is forwarded untouched so the graph core can
// turn unparseable values into gaps. Empty cells are skipped entirely:
// an absent cell means no sample was taken, which is different from a
// sample that failed to parse.
func (d *Datasource) readSource(source io.Reader, samplesChan chan InputData) {
	bufRead := NewLineReader(source)
	csvReader := csv.NewReader(bufRead)
	csvReader.TrimLeadingSpace = true
	headings, err := csvReader.Read()
	if err != nil {
		log.Printf("failed reading CSV headings: %v", err)
		return
	}
	if len(headings) < 2 {
		log.Printf("CSV needs a timestamp column and at least one series, got %d columns", len(headings))
		return
	}
	seriesNames := make([]string, 0, len(headings)-1)
	headingSeries := make([]int, 0, len(headings)-1)
	for _, heading := range headings[1:] {
		seriesNames = append(seriesNames, strings.TrimSpace(heading))
		headingSeries = append(headingSeries, d.nextSeriesID())
	}
	samplesChan <- InputData{
		Kind:          KindHeadings,
		Headings:      seriesNames,
		HeadingSeries: headingSeries,
	}
	// Continuously parse the CSV data and send it on the channel.
readLoop:
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				for ev := range d.watcher.Events {
					if ev.Op == fsnotify.Write {
						continue readLoop
					}
				}
			}
			log.Printf("could not read sample data: %v", err)
			return
		}
		ts, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			log.Printf("failed parsing timestamp %q: %v", rec[0], err)
			continue
		}
		for i := 1; i < len(rec) && i <= len(headingSeries); i++ {
			cell := strings.TrimSpace(rec[i])
			if len(cell) < 1 {
				// Skip null cells.
				continue
			}
			samplesChan <- InputData{
				Kind: KindSample,
				Sample: Sample{
					TimestampSec: ts,
					Series:       headingSeries[i-1],
					Raw:          cell,
				},
			}
		}
	}
}
