package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Parser classifies an utterance against an ordered list of intent
// definitions. Order is a precedence contract: the first pattern that matches
// the whole normalized input wins, so specific phrasings ("remind me about X
// in N minutes") are declared before the general ones that would otherwise
// swallow them ("remind me about X").
type Parser struct {
	defs []definition
}

type definition struct {
	name     string
	patterns []*regexp.Regexp
	build    func(captures map[string]string) Command
}

const (
	quantityClass = `(?P<quantity>\d+|an?)`
	unitClass     = `(?P<unit>(?:sec|min|hour)\w*)`
)

func NewParser() *Parser {
	return &Parser{
		defs: []definition{
			{
				name: "help",
				patterns: compile(
					`^help[.!]?$`,
				),
				build: func(_ map[string]string) Command {
					return Command{Kind: KindHelp}
				},
			},
			{
				name: "add_reminder",
				patterns: compile(
					`^(?:remind|tell) me (?:about|of) (?:the )?(?P<text>.+?) in `+quantityClass+` `+unitClass+`[.!]?$`,
					`^in `+quantityClass+` `+unitClass+`,? (?:remind|tell) me (?:about|of) (?:the )?(?P<text>.+?)[.!]?$`,
				),
				build: buildAddReminder,
			},
			{
				name: "list_reminders",
				patterns: compile(
					`^(?:list|show|tell)(?: (?:me|all|of|my))* reminders[.!]?$`,
				),
				build: func(_ map[string]string) Command {
					return Command{Kind: KindListReminders}
				},
			},
			{
				name: "clear_all_reminders",
				patterns: compile(
					`^(?:clear|delete|remove|forget)(?: (?:all|of|my))* reminders[.!]?$`,
				),
				build: func(_ map[string]string) Command {
					return Command{Kind: KindClearAllReminders}
				},
			},
			{
				name: "clear_reminder",
				patterns: compile(
					`^(?:clear|delete|remove|forget)(?: reminder)? (?P<id>\d+)[.!]?$`,
				),
				build: buildClearReminder,
			},
			{
				name: "add_reminder_no_time",
				patterns: compile(
					`^(?:remind|tell) me (?:about|of) (?:the )?(?P<text>.+?)[.!]?$`,
				),
				build: buildAddReminderNoTime,
			},
			{
				name: "time_spec",
				patterns: compile(
					`^(?:it takes )?` + quantityClass + ` ` + unitClass + `[.!]?$`,
				),
				build: buildTimeSpec,
			},
			{
				name: "confirm_yes",
				patterns: compile(
					`^(?:yes|sure|yeah|ok|okay)[.!]?$`,
				),
				build: func(_ map[string]string) Command {
					return Command{Kind: KindConfirm, Accepted: true}
				},
			},
			{
				name: "confirm_no",
				patterns: compile(
					`^(?:no|nope|nevermind)[.!]?$`,
				),
				build: func(_ map[string]string) Command {
					return Command{Kind: KindConfirm, Accepted: false}
				},
			},
		},
	}
}

// Parse maps an utterance to exactly one Command, falling back to KindUnknown
// when nothing matches. Matching is deterministic: same input, same command.
func (p *Parser) Parse(raw string) Command {
	input := normalizeUtterance(raw)

	for _, def := range p.defs {
		for _, pattern := range def.patterns {
			match := pattern.FindStringSubmatch(input)
			if match == nil {
				continue
			}

			captures := make(map[string]string)
			for i, name := range pattern.SubexpNames() {
				if name != "" {
					captures[name] = match[i]
				}
			}

			return def.build(captures)
		}
	}

	return Command{Kind: KindUnknown}
}

func buildAddReminder(captures map[string]string) Command {
	quantity, err := ParseQuantity(captures["quantity"])
	if err != nil {
		return Command{Kind: KindUnknown}
	}

	return Command{
		Kind:     KindAddReminder,
		Text:     captures["text"],
		Quantity: quantity,
		Unit:     ParseUnit(captures["unit"]),
	}
}

// strayDurationTail matches the timed-clause leftover an utterance carries when
// its unit token was not recognized ("... in 5 bananas"). The untimed form must
// not absorb that tail as subject text; such an utterance is a parse-miss.
var strayDurationTail = regexp.MustCompile(`(?i)\bin (?:\d+|an?) \S+$`)

func buildAddReminderNoTime(captures map[string]string) Command {
	text := captures["text"]
	if strayDurationTail.MatchString(text) {
		return Command{Kind: KindUnknown}
	}

	return Command{Kind: KindAddReminderNoTime, Text: text}
}

func buildTimeSpec(captures map[string]string) Command {
	quantity, err := ParseQuantity(captures["quantity"])
	if err != nil {
		return Command{Kind: KindUnknown}
	}

	return Command{
		Kind:     KindTimeSpec,
		Quantity: quantity,
		Unit:     ParseUnit(captures["unit"]),
	}
}

func buildClearReminder(captures map[string]string) Command {
	id, err := strconv.Atoi(captures["id"])
	if err != nil {
		return Command{Kind: KindUnknown}
	}

	return Command{Kind: KindClearReminder, ID: id}
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+pattern))
	}
	return compiled
}

// normalizeUtterance trims, collapses whitespace and strips combining marks so
// accented input still matches the ASCII patterns. Case is preserved; the
// patterns match case-insensitively.
func normalizeUtterance(text string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
