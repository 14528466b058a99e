// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

func levelColor(level slog.Level) int {
	switch {
	case level >= LevelCrit:
		return 35
	case level >= slog.LevelError:
		return 31
	case level >= slog.LevelWarn:
		return 33
	case level >= slog.LevelInfo:
		return 32
	case level >= slog.LevelDebug:
		return 36
	default:
		return 34
	}
}

func (h *TerminalHandler) format(r slog.Record) []byte {
	var b bytes.Buffer

	lvl := LevelAlignedString(r.Level)
	if h.useColor {
		fmt.Fprintf(&b, "\x1b[%dm%s\x1b[0m", levelColor(r.Level), lvl)
	} else {
		b.WriteString(lvl)
	}
	b.WriteString("[")
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")
	b.WriteString(r.Message)

	// try to justify the log output for short messages
	if (len(h.attrs) > 0 || r.NumAttrs() > 0) && len(r.Message) < termMsgJust {
		b.WriteString(strings.Repeat(" ", termMsgJust-len(r.Message)))
	}

	writeAttr := func(attr slog.Attr) {
		b.WriteByte(' ')
		if h.useColor {
			fmt.Fprintf(&b, "\x1b[%dm%s\x1b[0m=", levelColor(r.Level), attr.Key)
		} else {
			b.WriteString(attr.Key)
			b.WriteByte('=')
		}
		b.WriteString(escapeString(formatValue(attr.Value)))
	}
	for _, attr := range h.attrs {
		writeAttr(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(attr)
		return true
	})
	b.WriteByte('\n')
	return b.Bytes()
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	default:
		return formatAny(v.Any())
	}
}

// escapeString quotes values holding spaces, quotes or control characters.
func escapeString(s string) string {
	needsQuoting := s == ""
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' || r == utf8.RuneError {
			needsQuoting = true
			break
		}
	}
	if !needsQuoting {
		return s
	}
	return strconv.Quote(s)
}
