package history

import "sort"

type RecordTag string

const (
	TagEvent  RecordTag = "Event"
	TagDate   RecordTag = "Date"
	TagP0     RecordTag = "P0"
	TagP1     RecordTag = "P1"
	TagSize   RecordTag = "Size"
	TagResult RecordTag = "Result"
)

var tagOrder = map[RecordTag]int{
	TagEvent:  0,
	TagDate:   1,
	TagP0:     2,
	TagP1:     3,
	TagSize:   4,
	TagResult: 5,
}

type InfoGame struct {
	headers map[RecordTag]string
}

func NewInfoGame() *InfoGame {
	return &InfoGame{headers: make(map[RecordTag]string)}
}

func (i *InfoGame) Set(tag RecordTag, value string) {
	i.headers[tag] = value
}

func (i *InfoGame) Get(tag RecordTag) string {
	return i.headers[tag]
}

func (i *InfoGame) Len() int {
	return len(i.headers)
}

// known tags first in fixed order, then the rest alphabetically
func (i *InfoGame) Tags() []RecordTag {
	out := make([]RecordTag, 0, len(i.headers))
	for t := range i.headers {
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool {
		oa, ka := tagOrder[out[a]]
		ob, kb := tagOrder[out[b]]
		switch {
		case ka && kb:
			return oa < ob
		case ka != kb:
			return ka
		default:
			return out[a] < out[b]
		}
	})
	return out
}
