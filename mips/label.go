package mips

import (
	"iter"
	"regexp"
)

// reLabel matches a label definition line. A label name is any run of
// characters other than space and colon.
var reLabel = regexp.MustCompile(`^([^\s:]+)\s*:$`)

// LabelOf returns the label defined by line, if line is a label definition.
func LabelOf(line string) (label string, ok bool) {
	match := reLabel.FindStringSubmatch(line)
	if match == nil {
		return
	}
	return match[1], true
}

// Labels is a read-only table of label names to absolute addresses.
type Labels struct {
	address map[string]uint32
	order   []string
}

// Lookup returns the address bound to label.
func (labels Labels) Lookup(label string) (address uint32, ok bool) {
	address, ok = labels.address[label]
	return
}

// Len returns the number of distinct labels.
func (labels Labels) Len() int {
	return len(labels.order)
}

// All iterates over the labels in order of first definition.
func (labels Labels) All() iter.Seq2[string, uint32] {
	return func(yield func(label string, address uint32) bool) {
		for _, label := range labels.order {
			if !yield(label, labels.address[label]) {
				return
			}
		}
	}
}

// labelBuilder accumulates a label table.
type labelBuilder struct {
	Labels
	defined map[string]bool
	strict  bool
}

func newLabelBuilder(strict bool) *labelBuilder {
	return &labelBuilder{
		Labels: Labels{
			address: make(map[string]uint32, 16),
		},
		defined: make(map[string]bool, 16),
		strict:  strict,
	}
}

// predefine binds an external label. Source definitions may replace it.
func (lb *labelBuilder) predefine(label string, address uint32) {
	lb.bind(label, address)
}

// define binds a label found in the source.
func (lb *labelBuilder) define(label string, address uint32) (err error) {
	if lb.strict && lb.defined[label] {
		err = ErrLabelDuplicate
		return
	}
	lb.defined[label] = true
	lb.bind(label, address)
	return
}

func (lb *labelBuilder) bind(label string, address uint32) {
	if _, ok := lb.address[label]; !ok {
		lb.order = append(lb.order, label)
	}
	lb.address[label] = address
}

// scan binds every label definition in lines. A label takes the address of
// the next instruction line.
func (lb *labelBuilder) scan(lines []Line, start uint32) (err error) {
	count := uint32(0)
	for _, line := range lines {
		label, ok := LabelOf(line.Text)
		if !ok {
			count++
			continue
		}
		err = lb.define(label, start+4*count)
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}
	}
	return
}

// BuildLabelTable binds every label definition among the normalized lines.
// A repeated label takes its last definition.
func BuildLabelTable(lines []string, start uint32) Labels {
	lb := newLabelBuilder(false)
	// Without strict checking scan cannot fail.
	_ = lb.scan(linesOf(lines), start)
	return lb.Labels
}

// BuildLabelTableStrict is BuildLabelTable, but a repeated label is an error.
func BuildLabelTableStrict(lines []string, start uint32) (labels Labels, err error) {
	lb := newLabelBuilder(true)
	err = lb.scan(linesOf(lines), start)
	if err != nil {
		return
	}
	labels = lb.Labels
	return
}

// linesOf numbers already normalized lines.
func linesOf(texts []string) (lines []Line) {
	lines = make([]Line, len(texts))
	for n, text := range texts {
		lines[n] = Line{LineNo: n + 1, Text: text}
	}
	return
}
