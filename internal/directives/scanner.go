package directives

import "strings"

// Span is a half-open byte range [Start, End) in the scanned text
type Span struct {
	Start int
	End   int
}

// Match is one well-formed directive found in the text
type Match struct {
	Kind    Kind
	Payload string
	Span    Span
}

// ScanResult holds the matches in document order and the text left over
// once every matched span is cut out
type ScanResult struct {
	Matches   []Match
	Narrative string
}

// Scan finds every [tag]payload[/tag] span whose tag is a known kind. The
// first close tag of the same kind ends the payload. Unknown bracket text and
// unterminated tags stay in the narrative. Scanning is a single forward pass:
// once a close tag is known to be absent past some offset, later open tags of
// that kind are rejected without searching again.
func Scan(raw string) ScanResult {
	var (
		result    ScanResult
		narrative strings.Builder
		keepFrom  int
		i         int
		// noCloseFrom[k] is an offset with no close tag of kind k after it
		noCloseFrom = map[Kind]int{}
	)

	for i < len(raw) {
		rel := strings.IndexByte(raw[i:], '[')
		if rel < 0 {
			break
		}
		open := i + rel

		nameEnd := strings.IndexAny(raw[open+1:], "[]")
		if nameEnd < 0 {
			break
		}
		if raw[open+1+nameEnd] == '[' {
			i = open + 1 + nameEnd
			continue
		}
		name := raw[open+1 : open+1+nameEnd]

		kind, ok := KindForTag(name)
		if !ok {
			i = open + 1
			continue
		}

		payloadStart := open + 1 + nameEnd + 1
		if from, seen := noCloseFrom[kind]; seen && payloadStart >= from {
			i = payloadStart
			continue
		}
		closeRel := strings.Index(raw[payloadStart:], kind.Close())
		if closeRel < 0 {
			noCloseFrom[kind] = payloadStart
			i = payloadStart
			continue
		}
		payloadEnd := payloadStart + closeRel
		end := payloadEnd + len(kind.Close())

		result.Matches = append(result.Matches, Match{
			Kind:    kind,
			Payload: raw[payloadStart:payloadEnd],
			Span:    Span{Start: open, End: end},
		})

		narrative.WriteString(raw[keepFrom:open])
		keepFrom = end
		i = end
	}

	narrative.WriteString(raw[keepFrom:])
	result.Narrative = strings.TrimSpace(narrative.String())
	return result
}
