package pofill

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// emptyMsgstr is the line, after trimming, that marks an untranslated entry.
const emptyMsgstr = `msgstr ""`

var msgidLine = regexp.MustCompile(`^msgid\s+"(.*)"`)

// Stats summarizes one translation run.
type Stats struct {
	Total    int           // empty msgstr entries examined
	Replaced int           // entries filled from the indexes
	Missing  []string      // msgids, as written, that could not be resolved
	Elapsed  time.Duration // wall time spent streaming
}

// state of the line scanner.
type state int

const (
	stateIdle    state = iota // no msgid awaiting its msgstr
	statePending              // previous line was a msgid; only the next line is checked
)

// Translate rewrites the PO file at inputPath into outputPath, filling empty
// msgstr entries through names (normalized name -> id) and ids (id -> target
// name). The output is written in place as lines are read; a failure part way
// leaves a truncated file behind.
func Translate(inputPath, outputPath string, names, ids Mapping, opts ...Option) (*Stats, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", inputPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output file %q: %w", outputPath, err)
	}
	defer out.Close()

	o := applyOptions(opts)
	o.logger.Infof("Translating '%s'→'%s'", inputPath, outputPath)

	stats, err := TranslateReader(in, out, names, ids, opts...)
	if err != nil {
		return stats, fmt.Errorf("translate %q: %w", inputPath, err)
	}
	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("close output file %q: %w", outputPath, err)
	}
	return stats, nil
}

// TranslateReader streams PO text from r to w, see Translate.
// Lines that are not filled are copied byte for byte, line endings included.
func TranslateReader(r io.Reader, w io.Writer, names, ids Mapping, opts ...Option) (*Stats, error) {
	o := applyOptions(opts)
	start := time.Now()

	t := &translator{
		opts:  o,
		names: names,
		ids:   ids,
		out:   bufio.NewWriter(w),
		stats: &Stats{},
	}
	if err := t.run(bufio.NewReader(r)); err != nil {
		t.stats.Elapsed = time.Since(start)
		return t.stats, err
	}
	t.stats.Elapsed = time.Since(start)

	o.logger.Infof("Processed %d entries, %d replacements in %.2fs",
		t.stats.Total, t.stats.Replaced, t.stats.Elapsed.Seconds())
	if n := len(t.stats.Missing); n > 0 {
		o.logger.Infof("Missing mappings for %d entries.", n)
	}
	return t.stats, nil
}

type translator struct {
	opts  *Options
	names Mapping
	ids   Mapping
	out   *bufio.Writer
	stats *Stats

	state   state
	pending string
}

func (t *translator) run(in *bufio.Reader) error {
	for lineNo := 1; ; lineNo++ {
		line, err := in.ReadString('\n')
		if line != "" {
			if werr := t.step(line); werr != nil {
				return fmt.Errorf("write line %d: %w", lineNo, werr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read line %d: %w", lineNo, err)
		}
	}
	return t.out.Flush()
}

// step feeds one line, terminator included, through the state machine.
func (t *translator) step(line string) error {
	if strings.HasPrefix(line, "msgid ") {
		t.state, t.pending = stateIdle, ""
		// An empty msgid is the PO header, never a candidate.
		if m := msgidLine.FindStringSubmatch(line); m != nil && m[1] != "" {
			t.state, t.pending = statePending, m[1]
		}
		return t.write(line)
	}

	if t.state != statePending {
		return t.write(line)
	}
	msgid := t.pending
	t.state, t.pending = stateIdle, ""

	body, eol := splitEOL(line)
	if strings.TrimSpace(body) != emptyMsgstr {
		return t.write(line)
	}

	t.stats.Total++
	target, id := t.resolve(msgid)
	if target == "" {
		t.stats.Missing = append(t.stats.Missing, msgid)
		t.opts.logger.Warnf("No mapping for '%s'", msgid)
		return t.write(line)
	}
	t.stats.Replaced++
	t.opts.logger.WithFields(logrus.Fields{"id": id}).Infof("Replaced '%s'→'%s'", msgid, target)
	return t.write(`msgstr "` + escapePO(target) + `"` + eol)
}

// resolve joins msgid through both indexes. An empty target means unresolved.
func (t *translator) resolve(msgid string) (target, id string) {
	id, ok := t.names[t.opts.normalizer(msgid)]
	if !ok || id == "" {
		return "", ""
	}
	return t.ids[id], id
}

func (t *translator) write(s string) error {
	_, err := t.out.WriteString(s)
	return err
}

// splitEOL separates a trailing "\n" or "\r\n" from line.
func splitEOL(line string) (body, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// escapePO makes s safe inside a double-quoted PO string. Backslashes are
// kept as written, so escape sequences already present in the sheet (\n, \")
// pass through unchanged. A bare '"' and raw line breaks or tabs are escaped.
func escapePO(s string) string {
	if !strings.ContainsAny(s, "\"\n\t\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			if i > 0 && s[i-1] == '\\' {
				b.WriteByte(c)
			} else {
				b.WriteString(`\"`)
			}
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
