package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidValue    = errors.New("invalid value for field")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrReadOnlyField   = errors.New("field is read-only")
)

// segment is one dotted path element, optionally indexed: "experience[2]".
type segment struct {
	name  string
	index int
	slot  bool
}

func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUnknownField)
	}
	raw := strings.Split(path, ".")
	out := make([]segment, 0, len(raw))
	for _, part := range raw {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, path)
		}
		out = append(out, seg)
	}
	return out, nil
}

func parseSegment(part string) (segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if part == "" {
			return segment{}, ErrUnknownField
		}
		return segment{name: part}, nil
	}
	if open == 0 || !strings.HasSuffix(part, "]") {
		return segment{}, ErrUnknownField
	}
	idx, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || idx < 0 {
		return segment{}, ErrIndexOutOfRange
	}
	return segment{name: part[:open], index: idx, slot: true}, nil
}

// setStringList writes a whole list or one slot of it. Writing at len appends, nil at an index removes.
func setStringList(list *[]string, seg segment, value any) error {
	if !seg.slot {
		switch v := value.(type) {
		case nil:
			*list = nil
		case []string:
			*list = append([]string(nil), v...)
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return ErrInvalidValue
				}
				out = append(out, s)
			}
			*list = out
		default:
			return ErrInvalidValue
		}
		return nil
	}

	cur := *list
	if seg.index > len(cur) {
		return ErrIndexOutOfRange
	}
	if value == nil {
		if seg.index == len(cur) {
			return ErrIndexOutOfRange
		}
		*list = append(cur[:seg.index:seg.index], cur[seg.index+1:]...)
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return ErrInvalidValue
	}
	if seg.index == len(cur) {
		*list = append(cur, s)
		return nil
	}
	cur[seg.index] = s
	return nil
}
