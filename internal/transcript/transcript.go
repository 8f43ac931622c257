// Package transcript decodes newline-delimited JSON chat records into
// chat items.
package transcript

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	apperrors "github.com/diogo/playground/internal/errors"
	"github.com/diogo/playground/internal/logging"
	"github.com/diogo/playground/internal/models"
)

// maxLineSize bounds a single record.
const maxLineSize = 1024 * 1024

// Options controls decoding.
type Options struct {
	// AgentStreamID identifies the agent in data-stream records.
	AgentStreamID int
	// Strict makes malformed lines fail the read instead of being skipped.
	Strict bool
	// Delay is the pause between items when streaming a replay.
	Delay time.Duration
}

// DefaultOptions returns lenient decoding with agent stream 0.
func DefaultOptions() Options {
	return Options{}
}

// Result is one decoded item or a decoding error.
type Result struct {
	Item models.ChatItem
	Err  error
}

// Decode parses one JSON line. lineNo is 1-based and is used for error
// reporting and as the fallback timestamp.
func Decode(line string, lineNo int, opts Options) (models.ChatItem, error) {
	line = strings.TrimSpace(line)
	if !gjson.Valid(line) {
		return models.ChatItem{}, apperrors.NewParseError("invalid JSON", lineNo)
	}

	parsed := gjson.Parse(line)
	if !parsed.IsObject() {
		return models.ChatItem{}, apperrors.NewParseError("record is not an object", lineNo)
	}

	text := parsed.Get(PathText)
	if text.Exists() && text.Type != gjson.String {
		return models.ChatItem{}, apperrors.NewParseError("text must be a string", lineNo)
	}

	item := models.ChatItem{
		Text:    text.String(),
		IsFinal: true,
		Time:    int64(lineNo),
	}
	if v := parsed.Get(PathIsFinal); v.Exists() {
		item.IsFinal = v.Bool()
	}

	if parsed.Get(PathStreamID).Exists() || parsed.Get(PathDataType).Exists() {
		return decodeStream(parsed, item, lineNo, opts)
	}

	if v := parsed.Get(PathType); v.Exists() {
		item.Type = models.ChatType(v.String())
	}
	item.UserID = parsed.Get(PathUserID).String()
	if item.UserID == "" {
		item.UserID = string(item.Type)
	}
	if v := parsed.Get(PathTime); v.Exists() {
		item.Time = v.Int()
	}
	return item, nil
}

func decodeStream(parsed gjson.Result, item models.ChatItem, lineNo int, opts Options) (models.ChatItem, error) {
	if dt := parsed.Get(PathDataType); dt.Exists() && dt.String() != DataTypeTranscribe {
		return models.ChatItem{}, apperrors.NewParseError("unsupported data_type "+strconv.Quote(dt.String()), lineNo)
	}

	streamID := int(parsed.Get(PathStreamID).Int())
	item.UserID = strconv.Itoa(streamID)
	if streamID == opts.AgentStreamID {
		item.Type = models.ChatTypeAgent
	} else {
		item.Type = models.ChatTypeUser
	}
	if v := parsed.Get(PathTextTS); v.Exists() {
		item.Time = v.Int()
	}
	return item, nil
}

// Read decodes every record in r. In lenient mode malformed lines are
// logged and skipped.
func Read(r io.Reader, opts Options) ([]models.ChatItem, error) {
	log := logging.NewLogger("transcript")

	var items []models.ChatItem
	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		item, err := Decode(line, lineNo, opts)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			log.WithError(err).Warn("skipping transcript line")
			continue
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return items, err
	}

	log.WithField("items", len(items)).Debug("transcript read")
	return items, nil
}

// Stream decodes r in the background, pausing opts.Delay between items.
// The channel is closed at EOF, on a strict-mode error, or when ctx is done.
func Stream(ctx context.Context, r io.Reader, opts Options) <-chan Result {
	out := make(chan Result)

	go func() {
		defer close(out)
		log := logging.NewLogger("transcript")

		scanner := newScanner(r)
		lineNo := 0
		sent := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}

			item, err := Decode(line, lineNo, opts)
			if err != nil && !opts.Strict {
				log.WithError(err).Warn("skipping transcript line")
				continue
			}

			if sent > 0 && opts.Delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(opts.Delay):
				}
			}

			select {
			case <-ctx.Done():
				return
			case out <- Result{Item: item, Err: err}:
			}
			sent++
			if err != nil {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case <-ctx.Done():
			case out <- Result{Err: err}:
			}
		}
	}()

	return out
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return scanner
}
