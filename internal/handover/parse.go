// Package handover is the voice handover log: free-text notes like
// "gave 500 to ramesh for milk change returned 50" parsed into a structured
// record of cash handed to another person.
package handover

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	amountRe = regexp.MustCompile(`(\d+)`)
	changeRe = regexp.MustCompile(`(?i)change\s+returned\s+(\d+)`)
	toRe     = regexp.MustCompile(`(?i)to\s+([a-zA-Z\s]+)`)
	reasonRe = regexp.MustCompile(`(?i)for\s+([a-zA-Z\s]+)`)
)

// Parsed is the structured form of one spoken handover.
type Parsed struct {
	RawSpeech      string `json:"rawSpeech"`
	AmountGiven    int64  `json:"amountGiven"`
	ChangeReturned int64  `json:"changeReturned"`
	NetAmount      int64  `json:"netAmount"`
	GivenTo        string `json:"givenTo"`
	Reason         string `json:"reason"`
}

// Parse extracts the handover fields from free speech text. The first number
// in the text is the amount given; "change returned N" names the change; the
// words after "to" name the recipient and the words after "for" the reason,
// defaulting to "other". Net is amount minus change. Parsing never fails:
// missing pieces come back zero or blank.
func Parse(speech string) Parsed {
	p := Parsed{RawSpeech: speech, Reason: "other"}

	if m := amountRe.FindStringSubmatch(speech); m != nil {
		p.AmountGiven = parseInt(m[1])
	}
	if m := changeRe.FindStringSubmatch(speech); m != nil {
		p.ChangeReturned = parseInt(m[1])
	}
	if m := toRe.FindStringSubmatch(speech); m != nil {
		p.GivenTo = cutAtKeywords(m[1], "for", "change")
	}
	if m := reasonRe.FindStringSubmatch(speech); m != nil {
		if reason := cutAtKeywords(m[1], "to", "change"); reason != "" {
			p.Reason = reason
		}
	}
	p.NetAmount = p.AmountGiven - p.ChangeReturned
	return p
}

// cutAtKeywords trims a capture that ran past its own clause: the letters-
// and-spaces capture group is greedy, so "to ramesh for milk" captures
// "ramesh for milk" and needs cutting back at the next clause keyword.
func cutAtKeywords(s string, keywords ...string) string {
	words := strings.Fields(s)
	for i, w := range words {
		for _, kw := range keywords {
			if strings.EqualFold(w, kw) {
				return strings.Join(words[:i], " ")
			}
		}
	}
	return strings.Join(words, " ")
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
